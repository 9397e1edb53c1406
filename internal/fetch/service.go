// Package fetch orchestrates one CLI invocation: every requested app is
// looked up in every requested locale, in order, and each pair yields
// either a report block or a logged failure. One pair's failure never
// aborts the rest; the caller maps the failure count onto the exit status.
package fetch

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"storekeys/internal/domain"
	"storekeys/internal/keywords"
	"storekeys/internal/report"
)

// Request is one invocation's worth of work.
type Request struct {
	Apps            []domain.AppIdentifier
	Locales         []domain.Locale
	CountryOverride string
	PreferLive      bool
}

// Service wires the provider-agnostic pipeline: resolve storefront, fetch
// metadata, use the authoritative keywords when present or synthesize
// otherwise, and print the block.
type Service struct {
	Provider       domain.MetadataProvider
	Printer        *report.Printer
	Log            *zap.Logger
	DefaultCountry domain.StorefrontCountry
	CharLimit      int
}

// Run processes every (app, locale) pair in the order requested and
// returns how many pairs failed.
func (s *Service) Run(ctx context.Context, req Request) int {
	failed := 0
	for _, app := range req.Apps {
		for _, loc := range req.Locales {
			storefront := domain.ResolveStorefront(loc, req.CountryOverride, s.DefaultCountry)
			rec, err := s.Provider.Fetch(ctx, app, loc, storefront, req.PreferLive)
			if err != nil {
				failed++
				s.Log.Error("lookup failed",
					zap.String("identifier", app.String()),
					zap.String("locale", string(loc)),
					zap.String("storefront", string(storefront)),
					zap.Error(err))
				continue
			}
			s.Printer.Print(s.block(app, loc, rec))
		}
	}
	return failed
}

func (s *Service) block(app domain.AppIdentifier, loc domain.Locale, rec domain.MetadataRecord) report.Block {
	b := report.Block{
		AppName:    rec.AppName,
		Identifier: app.String(),
		Locale:     string(loc),
	}
	if rec.ExistingKeywords != nil {
		kw := strings.TrimSpace(*rec.ExistingKeywords)
		b.Keywords = kw
		b.Empty = kw == ""
		return b
	}
	res := keywords.Synthesize(rec, keywords.Options{CharLimit: s.CharLimit})
	b.Keywords = res.Keywords
	b.Empty = res.Empty
	return b
}
