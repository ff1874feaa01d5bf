package hcl

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/shaclsched/internal/config"
	"github.com/vk/shaclsched/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

const (
	defaultMonitorNamespace = "/"
	defaultMonitorTimeout   = 10 * time.Second
	defaultHealthcheckPort  = 0
)

// Loader is the concrete config.Loader backed by HCL.
type Loader struct{}

// NewLoader returns an HCL config.Loader.
func NewLoader() *Loader { return &Loader{} }

// Load implements config.Loader. An empty path yields the zero Model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	if path == "" {
		logger.Debug("No config path provided, using defaults for everything.")
		return &config.Model{}, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, diags)
	}

	var schema fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &schema); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %q: %w", path, diags)
	}

	model, err := translate(&schema)
	if err != nil {
		return nil, fmt.Errorf("failed to translate config file %q: %w", path, err)
	}
	logger.Debug("Config loaded.", "path", path, "priorities", model.Priorities, "monitor_enabled", model.Monitor != nil)
	return model, nil
}

// translate converts the decoded HCL schema into the format-agnostic
// config.Model, applying the typed, validated defaults for anything a
// deployment left unset.
func translate(s *fileSchema) (*config.Model, error) {
	model := &config.Model{Priorities: s.Priorities}

	if s.Monitor != nil {
		namespace, err := withDefaultString(s.Monitor.Namespace, defaultMonitorNamespace)
		if err != nil {
			return nil, fmt.Errorf("monitor.namespace: %w", err)
		}
		timeoutSeconds, err := withDefaultInt(s.Monitor.TimeoutSeconds, int(defaultMonitorTimeout.Seconds()))
		if err != nil {
			return nil, fmt.Errorf("monitor.timeout_seconds: %w", err)
		}
		model.Monitor = &config.Monitor{
			URL:       s.Monitor.URL,
			Namespace: namespace,
			Timeout:   time.Duration(timeoutSeconds) * time.Second,
		}
	}

	if s.Healthcheck != nil {
		port, err := withDefaultInt(s.Healthcheck.Port, defaultHealthcheckPort)
		if err != nil {
			return nil, fmt.Errorf("healthcheck.port: %w", err)
		}
		if port < 0 || port > 65535 {
			return nil, fmt.Errorf("healthcheck.port: %d is out of range [0, 65535]", port)
		}
		model.Healthcheck = config.Healthcheck{Port: port}
	}

	return model, nil
}

// withDefaultInt mirrors the teacher's InputDefinition.Default pattern: an
// unset value falls back to a cty.Value default decoded through gocty,
// rather than a bare Go literal, so the same validated-conversion path
// handles both deployment-supplied and built-in values.
func withDefaultInt(v *int, fallback int) (int, error) {
	if v != nil {
		return *v, nil
	}
	var out int
	if err := gocty.FromCtyValue(cty.NumberIntVal(int64(fallback)), &out); err != nil {
		return 0, err
	}
	return out, nil
}

func withDefaultString(v *string, fallback string) (string, error) {
	if v != nil {
		return *v, nil
	}
	var out string
	if err := gocty.FromCtyValue(cty.StringVal(fallback), &out); err != nil {
		return "", err
	}
	return out, nil
}
