package paramcache

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type stubDynamoClient struct {
	values        map[string]string
	batchCalls    int
	describeCalls int
	createCalls   int
	tableExists   bool
	// deferFirst leaves every key unprocessed on the first batch call.
	deferFirst bool
}

func (s *stubDynamoClient) BatchGetItem(_ context.Context, in *dynamodb.BatchGetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error) {
	s.batchCalls++
	out := &dynamodb.BatchGetItemOutput{
		Responses:       map[string][]map[string]types.AttributeValue{},
		UnprocessedKeys: map[string]types.KeysAndAttributes{},
	}
	for table, request := range in.RequestItems {
		if s.deferFirst && s.batchCalls == 1 {
			out.UnprocessedKeys[table] = request
			continue
		}
		for _, key := range request.Keys {
			name := key["name"].(*types.AttributeValueMemberS).Value
			value, ok := s.values[name]
			if !ok {
				continue
			}
			out.Responses[table] = append(out.Responses[table], map[string]types.AttributeValue{
				"name":  &types.AttributeValueMemberS{Value: name},
				"value": &types.AttributeValueMemberS{Value: value},
			})
		}
	}
	return out, nil
}

func (s *stubDynamoClient) CreateTable(context.Context, *dynamodb.CreateTableInput, ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	s.createCalls++
	s.tableExists = true
	return &dynamodb.CreateTableOutput{}, nil
}

func (s *stubDynamoClient) DescribeTable(context.Context, *dynamodb.DescribeTableInput, ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	s.describeCalls++
	if !s.tableExists {
		return nil, &types.ResourceNotFoundException{}
	}
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{TableStatus: types.TableStatusActive},
	}, nil
}

func newTestDynamoStore(t *testing.T, client DynamoAPI) Store {
	t.Helper()
	store, err := newDynamoStore(context.Background(), StoreConfig{
		DynamoClient: client,
		DynamoTable:  "parameters",
	})
	if err != nil {
		t.Fatalf("new dynamo store failed: %v", err)
	}
	return store
}

func TestDynamoStoreFetch(t *testing.T) {
	client := &stubDynamoClient{
		values:      map[string]string{"/app/a": "1", "/app/b": "2"},
		tableExists: true,
	}
	store := newTestDynamoStore(t, client)

	values, err := store.FetchParameters(context.Background(), []string{"/app/a", "/app/b"}, true)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if values["/app/a"] != "1" || values["/app/b"] != "2" {
		t.Fatalf("unexpected values %v", values)
	}
	if client.batchCalls != 1 {
		t.Fatalf("expected one batch call, got %d", client.batchCalls)
	}
}

func TestDynamoStoreMissingNameIsNotFound(t *testing.T) {
	client := &stubDynamoClient{
		values:      map[string]string{"/app/a": "1"},
		tableExists: true,
	}
	store := newTestDynamoStore(t, client)

	_, err := store.FetchParameters(context.Background(), []string{"/app/a", "/app/missing"}, true)
	if !errors.Is(err, ErrParameterNotFound) {
		t.Fatalf("expected ErrParameterNotFound, got %v", err)
	}
}

func TestDynamoStoreRetriesUnprocessedKeys(t *testing.T) {
	client := &stubDynamoClient{
		values:      map[string]string{"/app/a": "1"},
		tableExists: true,
		deferFirst:  true,
	}
	store := newTestDynamoStore(t, client)

	values, err := store.FetchParameters(context.Background(), []string{"/app/a"}, true)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if values["/app/a"] != "1" {
		t.Fatalf("unexpected values %v", values)
	}
	if client.batchCalls != 2 {
		t.Fatalf("expected retry of unprocessed keys, got %d calls", client.batchCalls)
	}
}

func TestDynamoStoreEnsuresTable(t *testing.T) {
	client := &stubDynamoClient{values: map[string]string{}}
	newTestDynamoStore(t, client)

	if client.createCalls != 1 {
		t.Fatalf("expected table creation, got %d create calls", client.createCalls)
	}
	if client.describeCalls < 2 {
		t.Fatalf("expected describe before and after create, got %d", client.describeCalls)
	}
}
