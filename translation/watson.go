package translation

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"strings"

	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/httpclient"
	"github.com/kbukum/babelink/logger"
	"github.com/kbukum/babelink/util"
)

// ProviderName is the name of the Watson translator.
const ProviderName = "watson"

// serviceName labels the upstream in errors, as in "Translation API error: 401 Unauthorized".
const serviceName = "Translation API"

// Watson implements Translator against the Watson Language Translator v3 API.
type Watson struct {
	client *httpclient.Adapter
	apiKey string
	url    string
	log    *logger.Logger
}

// NewWatson creates the Watson translator. opts customize the HTTP adapter.
func NewWatson(cfg Config, opts ...httpclient.Option) (*Watson, error) {
	cfg.ApplyDefaults()
	hc := httpclient.Config{Name: serviceName, Timeout: cfg.Timeout}
	hc.ApplyPolicy(cfg.Resilience)

	client, err := httpclient.New(hc, opts...)
	if err != nil {
		return nil, err
	}
	return &Watson{
		client: client,
		apiKey: cfg.APIKey,
		url:    cfg.URL,
		log:    logger.WithComponent("translation"),
	}, nil
}

func (w *Watson) Name() string { return ProviderName }

// Close releases pooled connections to the API.
func (w *Watson) Close(ctx context.Context) error {
	return w.client.Close(ctx)
}

// IsAvailable reports whether an API key is configured.
func (w *Watson) IsAvailable(_ context.Context) bool {
	return w.resolveKey() != ""
}

type watsonRequest struct {
	Text   []string `json:"text"`
	Source string   `json:"source"`
	Target string   `json:"target"`
}

type watsonResponse struct {
	Translations []struct {
		Translation *string `json:"translation"`
	} `json:"translations"`
	WordCount      int `json:"word_count"`
	CharacterCount int `json:"character_count"`
}

// Translate posts req to /v3/translate and returns the first translation.
func (w *Watson) Translate(ctx context.Context, req Request) (string, error) {
	key := w.resolveKey()
	if key == "" {
		return "", errors.MissingConfiguration("IBM Watson API key", EnvAPIKey)
	}
	base := strings.TrimRight(util.Coalesce(w.url, os.Getenv(EnvURL), DefaultURL), "/")

	w.log.Debug("translating", logger.Fields(
		"from", req.From, "to", req.To, "chars", len(req.Text),
		"url", base, "api_key", util.MaskSecret(key, 4),
	))

	resp, err := httpclient.Post[watsonResponse](w.client, ctx, base+"/v3/translate",
		watsonRequest{Text: []string{req.Text}, Source: req.From, Target: req.To},
		httpclient.WithQueryParam("version", APIVersion),
		httpclient.WithRequestAuth(httpclient.BasicAuth("apikey", key)),
	)
	if err != nil {
		return "", err
	}

	if len(resp.Data.Translations) == 0 || resp.Data.Translations[0].Translation == nil {
		decodeErr := errors.DecodeFailure("translation response", stderrors.New("missing translations[0].translation"))
		decodeErr.HTTPStatus = http.StatusBadGateway
		return "", decodeErr
	}
	return *resp.Data.Translations[0].Translation, nil
}

func (w *Watson) resolveKey() string {
	return util.Coalesce(w.apiKey, os.Getenv(EnvAPIKey))
}
