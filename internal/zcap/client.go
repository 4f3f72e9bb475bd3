package zcap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-cred-keeper/internal/config"
	"github.com/MKhiriev/go-cred-keeper/internal/keyring"
	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/MKhiriev/go-cred-keeper/internal/utils"
	"github.com/MKhiriev/go-cred-keeper/models"
	"github.com/go-resty/resty/v2"
)

// CapabilityInvocationHeader carries the signed invocation parameters of a
// capability-authorized request.
const CapabilityInvocationHeader = "Capability-Invocation"

// Invocation actions named in the signed header.
const (
	actionRead  = "read"
	actionWrite = "write"
)

const defaultTimeout = 15 * time.Second

type httpInvoker struct {
	client *utils.HTTPClient

	keys      keyring.Keyring
	signKeyID string

	logger *logger.Logger
}

// NewInvoker constructs the HTTP implementation of [Invoker].
//
// A non-positive timeout falls back to 15s. When cfg.InvocationSignKeyID is
// empty, invocation signing is disabled and requests carry no
// Capability-Invocation header; otherwise keys must hold the named key.
func NewInvoker(cfg config.Security, timeout time.Duration, keys keyring.Keyring, logger *logger.Logger) (Invoker, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if cfg.InvocationSignKeyID != "" && keys == nil {
		return nil, fmt.Errorf("invocation signing key %q configured without a key registry", cfg.InvocationSignKeyID)
	}

	client := utils.NewHTTPClient()
	client.SetTimeout(timeout)

	logger.Debug().Str("func", "NewInvoker").Msg("capability invoker created")

	return &httpInvoker{
		client:    client,
		keys:      keys,
		signKeyID: cfg.InvocationSignKeyID,
		logger:    logger,
	}, nil
}

// Read implements [Invoker]. It resolves the effective target, signs the
// invocation, and GETs the target under the capability.
func (h *httpInvoker) Read(ctx context.Context, rawURL string, capability models.Capability) (map[string]any, error) {
	target, err := resolveTarget(rawURL, capability)
	if err != nil {
		return nil, err
	}

	req, err := h.invocationRequest(ctx, actionRead, target, capability)
	if err != nil {
		return nil, err
	}

	resp, err := req.Get(target)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return decodeBody(resp)
}

// Write implements [Invoker]. It resolves the capability's invocation
// target, signs the invocation, and POSTs payload to it as JSON.
func (h *httpInvoker) Write(ctx context.Context, capability models.Capability, payload any) (map[string]any, error) {
	target, err := resolveTarget("", capability)
	if err != nil {
		return nil, err
	}

	req, err := h.invocationRequest(ctx, actionWrite, target, capability)
	if err != nil {
		return nil, err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(target)
	if err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return decodeBody(resp)
}

// invocationRequest prepares a request carrying the signed
// Capability-Invocation header. The signature covers "<action> <target>" so
// a header replayed against another resource or verb does not verify.
func (h *httpInvoker) invocationRequest(ctx context.Context, action, target string, capability models.Capability) (*resty.Request, error) {
	req := h.client.R().SetContext(ctx)
	if h.signKeyID == "" {
		return req, nil
	}

	signature, err := h.keys.Sign(h.signKeyID, []byte(action+" "+target))
	if err != nil {
		return nil, fmt.Errorf("sign capability invocation: %w", err)
	}

	header := fmt.Sprintf("zcap keyId=%q,action=%q,signature=%q", h.signKeyID, action, signature)
	if capability.Token != "" {
		header += fmt.Sprintf(",capability=%q", capability.Token)
	}

	return req.SetHeader(CapabilityInvocationHeader, header), nil
}

// resolveTarget picks the explicit URL when given, the capability's own
// invocation target otherwise, and validates the result is absolute.
func resolveTarget(rawURL string, capability models.Capability) (string, error) {
	target := strings.TrimSpace(rawURL)
	if target == "" {
		resolved, err := capability.InvocationTarget()
		if err != nil {
			return "", err
		}
		target = resolved
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid invocation target: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid invocation target %q: must include host and scheme", target)
	}

	return target, nil
}

func decodeBody(resp *resty.Response) (map[string]any, error) {
	body := resp.Body()
	if strings.TrimSpace(string(body)) == "" {
		return nil, nil
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode response body: %w", err)
	}

	return decoded, nil
}
