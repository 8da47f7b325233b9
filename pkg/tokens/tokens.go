// Package tokens estimates how many LLM tokens a document will cost.
package tokens

import (
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
	"go.uber.org/zap"
)

const (
	// DefaultEncoding is used when no encoding is configured.
	DefaultEncoding = "cl100k_base"
	// Approximate selects the len/4 estimate without loading a tokenizer.
	Approximate = "approx"
	// DefaultThreshold is the token count above which the CLI warns.
	DefaultThreshold = 128000
)

// BPE ranks come from files embedded in the binary; nothing is downloaded.
func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// Estimator counts tokens with a tiktoken encoding, or approximates them as
// one token per four bytes when no encoding could be loaded.
type Estimator struct {
	enc      *tiktoken.Tiktoken
	encoding string
}

// New loads the named encoding. It never fails: a load error is logged and
// the approximate estimator is returned instead.
func New(encoding string, logger *zap.Logger) *Estimator {
	if logger == nil {
		logger = zap.NewNop()
	}
	encoding = strings.TrimSpace(encoding)
	if encoding == "" {
		encoding = DefaultEncoding
	}
	if encoding == Approximate {
		return &Estimator{encoding: Approximate}
	}

	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		logger.Warn("Failed to load token encoding, using approximate count",
			zap.String("encoding", encoding),
			zap.Error(err))
		return &Estimator{encoding: Approximate}
	}
	logger.Debug("Loaded token encoding", zap.String("encoding", encoding))
	return &Estimator{enc: enc, encoding: encoding}
}

// Estimate returns the token count of text.
func (e *Estimator) Estimate(text string) int {
	if e == nil || e.enc == nil {
		return len(text) / 4
	}
	return len(e.enc.Encode(text, nil, nil))
}

// Encoding names the encoding in use, or Approximate.
func (e *Estimator) Encoding() string {
	if e == nil || e.enc == nil {
		return Approximate
	}
	return e.encoding
}

// Exceeds reports whether n is above a positive threshold.
func Exceeds(n, threshold int) bool {
	return threshold > 0 && n > threshold
}
