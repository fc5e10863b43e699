// Package fetch resolves citation keys to BibTeX records.
//
// A citation key of unknown provenance (INSPIRE texkey, ADS bibcode, or
// something older) is resolved by trying the two services in a strategy-
// dependent order, cross-referencing INSPIRE metadata to recover an ADS
// bibcode or arXiv id when a direct lookup misses. Every attempt either
// produces a record or is a soft miss; transport failures, bad JSON and
// not-found responses are all folded into "try the next source".
package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GregoryAshton/autobib/internal/inspire"
	"github.com/GregoryAshton/autobib/internal/texkey"
)

// ErrNotFound indicates every lookup attempt for a key was exhausted.
var ErrNotFound = errors.New("no BibTeX record found")

// InspireSource is the subset of the INSPIRE client used by the resolver.
type InspireSource interface {
	FetchBibtex(ctx context.Context, texkey string) (string, error)
	ResolveADSInfo(ctx context.Context, texkey string) (inspire.ADSInfo, error)
}

// ADSSource is the subset of the ADS client used by the resolver.
type ADSSource interface {
	ExportBibtex(ctx context.Context, bibcode string) (string, error)
	SearchBibcodeByArxiv(ctx context.Context, arxivID string) (string, error)
}

// Strategy names a source-preference order for lookups.
type Strategy string

const (
	// StrategyADS tries ADS first, INSPIRE as the last fallback.
	StrategyADS Strategy = "ads"
	// StrategyInspire tries INSPIRE first, ADS paths as fallbacks.
	StrategyInspire Strategy = "inspire"
	// StrategyAuto picks the first source by key classification.
	StrategyAuto Strategy = "auto"
)

// ParseStrategy maps a strategy name to a Strategy. Unrecognized names fall
// back to StrategyADS rather than erroring; `autobib update --source bogus`
// behaves exactly like --source ads.
func ParseStrategy(name string) Strategy {
	switch Strategy(name) {
	case StrategyInspire:
		return StrategyInspire
	case StrategyAuto:
		return StrategyAuto
	default:
		return StrategyADS
	}
}

// Result is a successfully fetched BibTeX record. Source is a short
// human-readable description of the provenance path that produced it,
// e.g. "ADS via arXiv (2301.01234)".
type Result struct {
	Bibtex string `json:"bibtex"`
	Source string `json:"source"`
}

// Resolver composes the two service clients into the strategy lookups.
type Resolver struct {
	inspire InspireSource
	ads     ADSSource
}

// NewResolver creates a resolver over the given service clients.
func NewResolver(ins InspireSource, ads ADSSource) *Resolver {
	return &Resolver{inspire: ins, ads: ads}
}

// Fetch resolves a citation key using the given strategy. It returns the
// first record any attempt produces, or ErrNotFound once the strategy's
// attempt sequence is exhausted. No attempt error is ever fatal.
func (r *Resolver) Fetch(ctx context.Context, key string, strategy Strategy) (Result, error) {
	switch strategy {
	case StrategyInspire:
		return r.inspirePreferred(ctx, key)
	case StrategyAuto:
		return r.auto(ctx, key)
	default:
		return r.adsPreferred(ctx, key)
	}
}

// adsPreferred tries ADS by every route before falling back to INSPIRE.
func (r *Resolver) adsPreferred(ctx context.Context, key string) (Result, error) {
	if texkey.IsADSBibcode(key) {
		if bibtex, err := r.ads.ExportBibtex(ctx, key); err == nil {
			return Result{Bibtex: bibtex, Source: "ADS (direct)"}, nil
		}
	}

	if res, ok := r.adsViaInspire(ctx, key, "ADS via INSPIRE (%s)", "ADS via arXiv (%s)"); ok {
		return res, nil
	}

	// The raw key may be a bibcode the classifier did not recognize.
	if bibtex, err := r.ads.ExportBibtex(ctx, key); err == nil {
		return Result{Bibtex: bibtex, Source: "ADS (direct fallback)"}, nil
	}

	if bibtex, err := r.inspire.FetchBibtex(ctx, key); err == nil {
		return Result{Bibtex: bibtex, Source: "INSPIRE (fallback)"}, nil
	}

	return Result{}, fmt.Errorf("%w for key %q", ErrNotFound, key)
}

// inspirePreferred tries INSPIRE first and replays the cross-reference ADS
// routes as fallbacks.
func (r *Resolver) inspirePreferred(ctx context.Context, key string) (Result, error) {
	if bibtex, err := r.inspire.FetchBibtex(ctx, key); err == nil {
		return Result{Bibtex: bibtex, Source: "INSPIRE"}, nil
	}

	if res, ok := r.adsViaInspire(ctx, key, "ADS (fallback, via INSPIRE)", "ADS (fallback, via arXiv)"); ok {
		return res, nil
	}

	return Result{}, fmt.Errorf("%w for key %q", ErrNotFound, key)
}

// auto branches once on key classification and prefers the matching source.
func (r *Resolver) auto(ctx context.Context, key string) (Result, error) {
	if texkey.IsADSBibcode(key) {
		if bibtex, err := r.ads.ExportBibtex(ctx, key); err == nil {
			return Result{Bibtex: bibtex, Source: "ADS (auto)"}, nil
		}
		if bibtex, err := r.inspire.FetchBibtex(ctx, key); err == nil {
			return Result{Bibtex: bibtex, Source: "INSPIRE (fallback)"}, nil
		}
		return Result{}, fmt.Errorf("%w for key %q", ErrNotFound, key)
	}

	// Anything else, including unclassifiable keys, is treated as an
	// INSPIRE-style key.
	if bibtex, err := r.inspire.FetchBibtex(ctx, key); err == nil {
		return Result{Bibtex: bibtex, Source: "INSPIRE (auto)"}, nil
	}

	if res, ok := r.adsViaInspire(ctx, key, "ADS (fallback, via INSPIRE)", "ADS (fallback, via arXiv)"); ok {
		return res, nil
	}

	return Result{}, fmt.Errorf("%w for key %q", ErrNotFound, key)
}

// adsViaInspire resolves cross-reference identifiers from INSPIRE metadata
// and tries the ADS bibcode route, then the ADS arXiv-search route. The two
// label formats receive the bibcode and arXiv id respectively; a format
// without a verb (no %s) is used verbatim.
func (r *Resolver) adsViaInspire(ctx context.Context, key, bibcodeLabel, arxivLabel string) (Result, bool) {
	info, err := r.inspire.ResolveADSInfo(ctx, key)
	if err != nil {
		return Result{}, false
	}

	if info.Bibcode != "" {
		if bibtex, err := r.ads.ExportBibtex(ctx, info.Bibcode); err == nil {
			return Result{Bibtex: bibtex, Source: formatLabel(bibcodeLabel, info.Bibcode)}, true
		}
	}

	if info.ArxivID != "" {
		bibcode, err := r.ads.SearchBibcodeByArxiv(ctx, info.ArxivID)
		if err == nil {
			if bibtex, err := r.ads.ExportBibtex(ctx, bibcode); err == nil {
				return Result{Bibtex: bibtex, Source: formatLabel(arxivLabel, info.ArxivID)}, true
			}
		}
	}

	return Result{}, false
}

func formatLabel(format, arg string) string {
	if !strings.Contains(format, "%s") {
		return format
	}
	return fmt.Sprintf(format, arg)
}
