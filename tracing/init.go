package tracing

import (
	"io"

	"github.com/antonilol/mempool/errors"
	"github.com/antonilol/mempool/settings"
	"github.com/opentracing/opentracing-go"
	"github.com/uber/jaeger-client-go"
	"github.com/uber/jaeger-client-go/config"
)

// InitTracer initializes the global tracer for the given service.
// It is a no-op when tracing is disabled in the settings.
func InitTracer(serviceName string, tSettings *settings.Settings) (io.Closer, error) {
	if !tSettings.Tracing.Enabled {
		return nil, nil
	}

	return InitOpenTracer(serviceName, tSettings.Tracing.SampleRate, tSettings)
}

// InitOpenTracer initializes the Jaeger tracer using opentracing
// serviceName: the name of the service
// samplingRate: the rate at which to sample traces (0.0 - 1.0)
func InitOpenTracer(serviceName string, samplingRate float64, tSettings *settings.Settings) (io.Closer, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, errors.NewConfigurationError("cannot parse jaeger environment variables", err)
	}

	cfg.ServiceName = serviceName
	cfg.Sampler.Type = jaeger.SamplerTypeProbabilistic
	cfg.Sampler.Param = samplingRate

	if tSettings.Tracing.CollectorURL != "" {
		cfg.Reporter.CollectorEndpoint = tSettings.Tracing.CollectorURL
	}

	var tracer opentracing.Tracer

	var closer io.Closer

	tracer, closer, err = cfg.NewTracer()
	if err != nil {
		return nil, errors.NewConfigurationError("cannot initialize jaeger tracer", err)
	}

	opentracing.SetGlobalTracer(tracer)

	return closer, nil
}
