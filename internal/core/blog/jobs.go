// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// # Scheduled Jobs

// WarmSections precomputes and caches the landing page for every category
// and for "All". A failing category does not stop the others.
func (service *Service) WarmSections(context context.Context) error {
	if service.sections == nil {
		return nil
	}

	var errs []error
	for _, category := range append([]Category{""}, Categories...) {
		sections, err := service.computeSections(context, category)
		if err != nil {
			errs = append(errs, fmt.Errorf("warm %q: %w", category, err))
			continue
		}
		service.storeSections(context, sectionKey(category), sections)
	}

	return errors.Join(errs...)
}

// ReconcileRatings rewrites stored rating aggregates that drifted from the
// rating rows, for instance after a reader account was deleted.
func (service *Service) ReconcileRatings(context context.Context) error {
	corrected, err := service.repository.ReconcileRatings(context)
	if err != nil {
		return err
	}

	if corrected > 0 {
		service.logger.WarnContext(context, "blog_ratings_reconciled", slog.Int("corrected", corrected))
		service.invalidateSections(context)
	}
	return nil
}
