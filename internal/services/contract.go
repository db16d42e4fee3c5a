//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go

package services

import "context"

// Presigner issues short-lived direct-upload URLs. Implemented by storage.Client.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string, sizeBytes int64) (string, map[string]string, error)
	PublicURL(key string) string
}
