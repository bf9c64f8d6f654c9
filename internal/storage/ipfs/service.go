package ipfs

import (
	"context"
	"fmt"
	"io"
	"strings"

	shell "github.com/ipfs/go-ipfs-api"
	"github.com/soldout/backend/internal/storage"
)

// Service stores assets on an IPFS node and references them through a gateway
type Service struct {
	shell      *shell.Shell
	gatewayURL string
	logger     storage.Logger
}

// NewService creates a new IPFS service instance
func NewService(cfg *storage.IPFSConfig, logger storage.Logger) *Service {
	gateway := cfg.Gateway
	if !strings.HasSuffix(gateway, "/") {
		gateway += "/"
	}
	return &Service{
		shell:      shell.NewShell(cfg.APIAddress),
		gatewayURL: gateway,
		logger:     logger,
	}
}

// Save adds and pins the content. The key is not part of the address.
func (s *Service) Save(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	cid, err := s.shell.Add(r, shell.Pin(true))
	if err != nil {
		return "", fmt.Errorf("failed to upload to IPFS: %v", err)
	}
	s.logger.LogInfo("Added asset to IPFS", map[string]interface{}{"key": key, "cid": cid})
	return s.gatewayURL + cid, nil
}

// Delete unpins the content so the node can garbage collect it
func (s *Service) Delete(_ context.Context, ref string) error {
	cid := cidFromRef(s.gatewayURL, ref)
	if cid == "" {
		return fmt.Errorf("reference %q is not managed by this store", ref)
	}
	if err := s.shell.Unpin(cid); err != nil {
		return fmt.Errorf("failed to unpin %s: %v", cid, err)
	}
	return nil
}

// Close closes any open IPFS connections and resources
func (s *Service) Close() error {
	return nil
}

func cidFromRef(gateway, ref string) string {
	if !strings.HasPrefix(ref, gateway) {
		return ""
	}
	return strings.TrimPrefix(ref, gateway)
}
