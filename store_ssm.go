package paramcache

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// SSMAPI captures the subset of the AWS SSM client used by the store.
type SSMAPI interface {
	GetParameters(ctx context.Context, params *ssm.GetParametersInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersOutput, error)
}

// GetParameters accepts at most ten names per call.
const ssmMaxNamesPerCall = 10

type ssmStore struct {
	client SSMAPI
}

func newSSMStore(ctx context.Context, cfg StoreConfig) (Store, error) {
	if cfg.SSMClient == nil {
		client, err := newSSMClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		cfg.SSMClient = client
	}
	return &ssmStore{client: cfg.SSMClient}, nil
}

func newSSMClient(ctx context.Context, cfg StoreConfig) (*ssm.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.SSMRegion),
	}
	if cfg.SSMEndpoint != "" {
		// Custom endpoints are for local stacks; real credentials are not
		// expected there.
		loadOpts = append(loadOpts,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("dummy", "dummy", "")),
		)
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	return ssm.NewFromConfig(awsCfg, func(o *ssm.Options) {
		if cfg.SSMEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.SSMEndpoint)
		}
	}), nil
}

func (s *ssmStore) Driver() Driver { return DriverSSM }

func (s *ssmStore) FetchParameters(ctx context.Context, names []string, withDecryption bool) (map[string]string, error) {
	values := make(map[string]string, len(names))
	for start := 0; start < len(names); start += ssmMaxNamesPerCall {
		end := start + ssmMaxNamesPerCall
		if end > len(names) {
			end = len(names)
		}
		out, err := s.client.GetParameters(ctx, &ssm.GetParametersInput{
			Names:          names[start:end],
			WithDecryption: aws.Bool(withDecryption),
		})
		if err != nil {
			return nil, err
		}
		if len(out.InvalidParameters) > 0 {
			return nil, fmt.Errorf("parameter %q: %w", out.InvalidParameters[0], ErrParameterNotFound)
		}
		for _, p := range out.Parameters {
			values[aws.ToString(p.Name)] = aws.ToString(p.Value)
		}
	}
	return values, nil
}
