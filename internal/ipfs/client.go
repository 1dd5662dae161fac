package ipfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	shell "github.com/ipfs/go-ipfs-api"
)

// ErrUnavailable is returned by Fetch when the content store cannot serve
// the reference (network failure, timeout, or unknown content).
var ErrUnavailable = errors.New("content unavailable")

// Client defines the interface for content store operations
type Client interface {
	// Fetch returns the raw bytes behind a content reference.
	Fetch(ctx context.Context, ref string) ([]byte, error)
	// Pin asks the store to keep the content available. Best-effort;
	// callers ignore failures.
	Pin(ctx context.Context, ref string) error
}

// ShellClient implements Client over the IPFS HTTP API.
type ShellClient struct {
	sh *shell.Shell
}

// NewShellClient connects to the IPFS API endpoint. The timeout bounds every
// individual API call.
func NewShellClient(apiURL string, timeout time.Duration) *ShellClient {
	sh := shell.NewShellWithClient(apiURL, &http.Client{Timeout: timeout})
	log.Printf("Using IPFS API at %s", apiURL)
	return &ShellClient{sh: sh}
}

func (c *ShellClient) Fetch(ctx context.Context, ref string) ([]byte, error) {
	path, err := canonicalRef(ref)
	if err != nil {
		return nil, err
	}
	resp, err := c.sh.Request("cat", path).Send(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}
	defer resp.Close()
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, path, resp.Error)
	}
	data, err := io.ReadAll(resp.Output)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}
	return data, nil
}

func (c *ShellClient) Pin(ctx context.Context, ref string) error {
	path, err := canonicalRef(ref)
	if err != nil {
		return err
	}
	resp, err := c.sh.Request("pin/add", path).Send(ctx)
	if err != nil {
		return fmt.Errorf("pin %s: %w", path, err)
	}
	defer resp.Close()
	if resp.Error != nil {
		return fmt.Errorf("pin %s: %w", path, resp.Error)
	}
	return nil
}
