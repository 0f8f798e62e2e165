package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/dwilkie/tropo-message/internal/domain"
)

// TokenSecret represents the structure of the secret stored in AWS Secrets Manager.
type TokenSecret struct {
	Token string `json:"token"`
}

// SecretsAPI is the subset of the Secrets Manager client the provider uses.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Provider reads the application token from Secrets Manager and caches it
// for the life of the process.
type Provider struct {
	client     SecretsAPI
	secretName string
	token      string
	mu         sync.RWMutex
}

// NewProvider creates a Provider using the default AWS credential chain
// (the Lambda execution role when deployed).
func NewProvider(ctx context.Context, secretName string) (*Provider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewProviderWithClient(secretsmanager.NewFromConfig(cfg), secretName), nil
}

// NewProviderWithClient creates a Provider around an existing client.
func NewProviderWithClient(client SecretsAPI, secretName string) *Provider {
	return &Provider{
		client:     client,
		secretName: secretName,
	}
}

// Token implements ports.TokenProvider.
func (p *Provider) Token(ctx context.Context) (string, error) {
	p.mu.RLock()
	if p.token != "" {
		token := p.token
		p.mu.RUnlock()
		return token, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	// Double-check after acquiring write lock
	if p.token != "" {
		return p.token, nil
	}

	secret, err := p.fetch(ctx)
	if err != nil {
		return "", err
	}

	p.token = secret.Token
	return p.token, nil
}

func (p *Provider) fetch(ctx context.Context) (*TokenSecret, error) {
	if p.secretName == "" {
		return nil, fmt.Errorf("secret name is empty")
	}

	output, err := p.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(p.secretName),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch secret %q from secrets manager: %w", p.secretName, err)
	}

	if output.SecretString == nil {
		return nil, fmt.Errorf("secret %q has no string value (binary secrets not supported)", p.secretName)
	}

	var secret TokenSecret
	if err := json.Unmarshal([]byte(*output.SecretString), &secret); err != nil {
		return nil, fmt.Errorf("parse secret %q as JSON: %w", p.secretName, err)
	}

	if secret.Token == "" {
		return nil, fmt.Errorf("secret %q missing required field token: %w", p.secretName, domain.ErrMissingToken)
	}

	return &secret, nil
}

// Static is a token provider backed by a fixed value, usually from the
// environment.
type Static string

// Token implements ports.TokenProvider.
func (s Static) Token(context.Context) (string, error) {
	if s == "" {
		return "", domain.ErrMissingToken
	}
	return string(s), nil
}
