package fetch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/GregoryAshton/autobib/internal/inspire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStub = errors.New("stub miss")

// stubInspire implements InspireSource from maps and logs every call so
// tests can pin the attempt order.
type stubInspire struct {
	bibtex map[string]string
	info   map[string]inspire.ADSInfo
	log    *[]string
}

func (s *stubInspire) FetchBibtex(_ context.Context, key string) (string, error) {
	s.record("inspire.fetch(" + key + ")")
	if b, ok := s.bibtex[key]; ok {
		return b, nil
	}
	return "", errStub
}

func (s *stubInspire) ResolveADSInfo(_ context.Context, key string) (inspire.ADSInfo, error) {
	s.record("inspire.resolve(" + key + ")")
	return s.info[key], nil
}

func (s *stubInspire) record(call string) {
	if s.log != nil {
		*s.log = append(*s.log, call)
	}
}

// stubADS implements ADSSource from maps.
type stubADS struct {
	bibtex   map[string]string // bibcode → record
	bibcodes map[string]string // arXiv id → bibcode
	log      *[]string
}

func (s *stubADS) ExportBibtex(_ context.Context, bibcode string) (string, error) {
	s.record("ads.export(" + bibcode + ")")
	if b, ok := s.bibtex[bibcode]; ok {
		return b, nil
	}
	return "", errStub
}

func (s *stubADS) SearchBibcodeByArxiv(_ context.Context, arxivID string) (string, error) {
	s.record("ads.search(" + arxivID + ")")
	if b, ok := s.bibcodes[arxivID]; ok {
		return b, nil
	}
	return "", errStub
}

func (s *stubADS) record(call string) {
	if s.log != nil {
		*s.log = append(*s.log, call)
	}
}

func newResolver(ins *stubInspire, ads *stubADS) *Resolver {
	if ins == nil {
		ins = &stubInspire{}
	}
	if ads == nil {
		ads = &stubADS{}
	}
	return NewResolver(ins, ads)
}

func TestParseStrategy(t *testing.T) {
	assert.Equal(t, StrategyADS, ParseStrategy("ads"))
	assert.Equal(t, StrategyInspire, ParseStrategy("inspire"))
	assert.Equal(t, StrategyAuto, ParseStrategy("auto"))
	// Unrecognized names silently fall back to ADS-preferred.
	assert.Equal(t, StrategyADS, ParseStrategy("bogus"))
	assert.Equal(t, StrategyADS, ParseStrategy(""))
}

func TestFetch_ADSDirect(t *testing.T) {
	const bibcode = "2016PhRvL.116f1102A"
	r := newResolver(nil, &stubADS{bibtex: map[string]string{bibcode: "@ARTICLE{x}"}})

	res, err := r.Fetch(context.Background(), bibcode, StrategyADS)
	require.NoError(t, err)
	assert.Equal(t, "@ARTICLE{x}", res.Bibtex)
	assert.Equal(t, "ADS (direct)", res.Source)
}

func TestFetch_ADSPreferredWinsWhenBothSucceed(t *testing.T) {
	const bibcode = "2016PhRvL.116f1102A"
	ins := &stubInspire{bibtex: map[string]string{bibcode: "@article{from-inspire}"}}
	ads := &stubADS{bibtex: map[string]string{bibcode: "@ARTICLE{from-ads}"}}
	r := newResolver(ins, ads)

	res, err := r.Fetch(context.Background(), bibcode, StrategyADS)
	require.NoError(t, err)
	assert.Equal(t, "@ARTICLE{from-ads}", res.Bibtex)
	assert.Equal(t, "ADS (direct)", res.Source)
}

func TestFetch_InspirePreferredWinsWhenBothSucceed(t *testing.T) {
	const key = "Maldacena:1997re"
	ins := &stubInspire{
		bibtex: map[string]string{key: "@article{from-inspire}"},
		info:   map[string]inspire.ADSInfo{key: {Bibcode: "1998AdTMP...2..231M"}},
	}
	ads := &stubADS{bibtex: map[string]string{"1998AdTMP...2..231M": "@ARTICLE{from-ads}"}}
	r := newResolver(ins, ads)

	res, err := r.Fetch(context.Background(), key, StrategyInspire)
	require.NoError(t, err)
	assert.Equal(t, "@article{from-inspire}", res.Bibtex)
	assert.Equal(t, "INSPIRE", res.Source)
}

func TestFetch_ADSViaInspireBibcode(t *testing.T) {
	const key = "Maldacena:1997re"
	ins := &stubInspire{info: map[string]inspire.ADSInfo{key: {Bibcode: "1998AdTMP...2..231M"}}}
	ads := &stubADS{bibtex: map[string]string{"1998AdTMP...2..231M": "@ARTICLE{m}"}}
	r := newResolver(ins, ads)

	res, err := r.Fetch(context.Background(), key, StrategyADS)
	require.NoError(t, err)
	assert.Equal(t, "ADS via INSPIRE (1998AdTMP...2..231M)", res.Source)
}

func TestFetch_ADSViaArxiv(t *testing.T) {
	const key = "Someone:2023ab"
	ins := &stubInspire{info: map[string]inspire.ADSInfo{key: {ArxivID: "2301.01234"}}}
	ads := &stubADS{
		bibcodes: map[string]string{"2301.01234": "2023PhRvD.107f3001S"},
		bibtex:   map[string]string{"2023PhRvD.107f3001S": "@ARTICLE{s}"},
	}
	r := newResolver(ins, ads)

	res, err := r.Fetch(context.Background(), key, StrategyADS)
	require.NoError(t, err)
	assert.Equal(t, "ADS via arXiv (2301.01234)", res.Source)
}

func TestFetch_ADSDirectFallbackForUnclassifiedBibcode(t *testing.T) {
	// A key the classifier rejects can still be a valid bibcode; the raw
	// key is tried against the export service before giving up on ADS.
	const key = "odd-looking-key"
	ads := &stubADS{bibtex: map[string]string{key: "@ARTICLE{o}"}}
	r := newResolver(nil, ads)

	res, err := r.Fetch(context.Background(), key, StrategyADS)
	require.NoError(t, err)
	assert.Equal(t, "ADS (direct fallback)", res.Source)
}

func TestFetch_ADSPreferredInspireFallback(t *testing.T) {
	const key = "Weinberg:1988cp"
	ins := &stubInspire{bibtex: map[string]string{key: "@article{w}"}}
	r := newResolver(ins, nil)

	res, err := r.Fetch(context.Background(), key, StrategyADS)
	require.NoError(t, err)
	assert.Equal(t, "INSPIRE (fallback)", res.Source)
}

func TestFetch_InspirePreferredFallbackLabels(t *testing.T) {
	const key = "Maldacena:1997re"

	t.Run("via inspire bibcode", func(t *testing.T) {
		ins := &stubInspire{info: map[string]inspire.ADSInfo{key: {Bibcode: "1998AdTMP...2..231M"}}}
		ads := &stubADS{bibtex: map[string]string{"1998AdTMP...2..231M": "@ARTICLE{m}"}}
		res, err := newResolver(ins, ads).Fetch(context.Background(), key, StrategyInspire)
		require.NoError(t, err)
		assert.Equal(t, "ADS (fallback, via INSPIRE)", res.Source)
	})

	t.Run("via arxiv", func(t *testing.T) {
		ins := &stubInspire{info: map[string]inspire.ADSInfo{key: {ArxivID: "hep-th/9711200"}}}
		ads := &stubADS{
			bibcodes: map[string]string{"hep-th/9711200": "1998AdTMP...2..231M"},
			bibtex:   map[string]string{"1998AdTMP...2..231M": "@ARTICLE{m}"},
		}
		res, err := newResolver(ins, ads).Fetch(context.Background(), key, StrategyInspire)
		require.NoError(t, err)
		assert.Equal(t, "ADS (fallback, via arXiv)", res.Source)
	})
}

func TestFetch_AutoInspireKey(t *testing.T) {
	const key = "Maldacena:1997re"
	ins := &stubInspire{bibtex: map[string]string{key: "@article{m}"}}
	r := newResolver(ins, nil)

	res, err := r.Fetch(context.Background(), key, StrategyAuto)
	require.NoError(t, err)
	assert.Equal(t, "INSPIRE (auto)", res.Source)
}

func TestFetch_AutoFallbackViaInspireBibcode(t *testing.T) {
	// INSPIRE has no BibTeX for the key but its metadata carries an ADS
	// bibcode; auto falls back to ADS through the cross-reference.
	const key = "Maldacena:1997re"
	ins := &stubInspire{info: map[string]inspire.ADSInfo{key: {Bibcode: "1998AdTMP...2..231M"}}}
	ads := &stubADS{bibtex: map[string]string{"1998AdTMP...2..231M": "@ARTICLE{m}"}}
	r := newResolver(ins, ads)

	res, err := r.Fetch(context.Background(), key, StrategyAuto)
	require.NoError(t, err)
	assert.Equal(t, "@ARTICLE{m}", res.Bibtex)
	assert.Equal(t, "ADS (fallback, via INSPIRE)", res.Source)
}

func TestFetch_AutoBibcodeKey(t *testing.T) {
	const bibcode = "2016PhRvL.116f1102A"

	t.Run("ads hit", func(t *testing.T) {
		ads := &stubADS{bibtex: map[string]string{bibcode: "@ARTICLE{x}"}}
		res, err := newResolver(nil, ads).Fetch(context.Background(), bibcode, StrategyAuto)
		require.NoError(t, err)
		assert.Equal(t, "ADS (auto)", res.Source)
	})

	t.Run("ads miss falls back to inspire", func(t *testing.T) {
		ins := &stubInspire{bibtex: map[string]string{bibcode: "@article{x}"}}
		res, err := newResolver(ins, nil).Fetch(context.Background(), bibcode, StrategyAuto)
		require.NoError(t, err)
		assert.Equal(t, "INSPIRE (fallback)", res.Source)
	})
}

func TestFetch_AllMiss(t *testing.T) {
	for _, strategy := range []Strategy{StrategyADS, StrategyInspire, StrategyAuto} {
		t.Run(string(strategy), func(t *testing.T) {
			r := newResolver(nil, nil)
			res, err := r.Fetch(context.Background(), "Nobody:2099zz", strategy)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Empty(t, res.Bibtex)
			assert.Empty(t, res.Source)
		})
	}
}

func TestFetch_UnknownStrategyBehavesLikeADS(t *testing.T) {
	const bibcode = "2016PhRvL.116f1102A"
	ads := &stubADS{bibtex: map[string]string{bibcode: "@ARTICLE{x}"}}
	r := newResolver(nil, ads)

	// Pins the silent fallback: an unrecognized strategy name must behave
	// exactly like StrategyADS.
	res, err := r.Fetch(context.Background(), bibcode, Strategy("bogus"))
	require.NoError(t, err)
	assert.Equal(t, "ADS (direct)", res.Source)
}

func TestFetch_ADSPreferredAttemptOrder(t *testing.T) {
	// With every lookup missing, the full ADS-preferred sequence runs in a
	// fixed order: crossref resolve, raw-key export, INSPIRE fetch. The
	// direct export comes first only for classified bibcodes.
	var log []string
	const key = "Maldacena:1997re"
	ins := &stubInspire{
		info: map[string]inspire.ADSInfo{key: {Bibcode: "1998AdTMP...2..231M", ArxivID: "hep-th/9711200"}},
		log:  &log,
	}
	ads := &stubADS{log: &log}
	r := newResolver(ins, ads)

	_, err := r.Fetch(context.Background(), key, StrategyADS)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []string{
		"inspire.resolve(" + key + ")",
		"ads.export(1998AdTMP...2..231M)",
		"ads.search(hep-th/9711200)",
		"ads.export(" + key + ")",
		"inspire.fetch(" + key + ")",
	}, log)
}

func TestFetch_ArxivRouteRunsWhenBibcodeExportMisses(t *testing.T) {
	// Both identifiers resolved, but the bibcode export misses; the arXiv
	// search route still recovers the record.
	const key = "Someone:2023ab"
	ins := &stubInspire{info: map[string]inspire.ADSInfo{key: {
		Bibcode: "2099Bogus.123..456Z",
		ArxivID: "2301.01234",
	}}}
	ads := &stubADS{
		bibcodes: map[string]string{"2301.01234": "2023PhRvD.107f3001S"},
		bibtex:   map[string]string{"2023PhRvD.107f3001S": "@ARTICLE{s}"},
	}
	r := newResolver(ins, ads)

	res, err := r.Fetch(context.Background(), key, StrategyADS)
	require.NoError(t, err)
	assert.Equal(t, "ADS via arXiv (2301.01234)", res.Source)
}

func TestFetch_DeterministicGivenFixedResponses(t *testing.T) {
	const key = "Abbott:2016blz"
	ins := &stubInspire{info: map[string]inspire.ADSInfo{key: {Bibcode: "2016PhRvL.116f1102A"}}}
	ads := &stubADS{bibtex: map[string]string{"2016PhRvL.116f1102A": "@ARTICLE{gw}"}}
	r := newResolver(ins, ads)

	first, err := r.Fetch(context.Background(), key, StrategyADS)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		res, err := r.Fetch(context.Background(), key, StrategyADS)
		require.NoError(t, err)
		assert.Equal(t, first, res, fmt.Sprintf("run %d diverged", i))
	}
}
