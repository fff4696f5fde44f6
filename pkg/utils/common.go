// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package utils

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ava-labs/token-deployer/pkg/constants"
)

// RetryWithContext calls [f] up to [maxAttempts] times, giving each attempt
// its own child context of [attemptTimeout] derived from [ctx]. It stops early
// if [ctx] is done.
func RetryWithContext[T any](
	ctx context.Context,
	attemptTimeout time.Duration,
	f func(context.Context) (T, error),
	maxAttempts int,
	retryInterval time.Duration,
) (T, error) {
	var (
		result T
		err    error
	)
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		result, err = f(attemptCtx)
		cancel()
		if err == nil {
			return result, nil
		}
		if attempt == maxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: last err = %w", ctx.Err(), err)
		case <-time.After(retryInterval):
		}
	}
	return result, err
}

// GetKeyNames returns the names of the keys stored at [keyDir], regardless of
// their on-disk format, sorted and deduplicated.
func GetKeyNames(keyDir string) ([]string, error) {
	matches, err := os.ReadDir(keyDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	names := []string{}
	for _, m := range matches {
		if m.IsDir() {
			continue
		}
		for _, suffix := range []string{constants.KeySuffix, constants.KeystoreSuffix} {
			if strings.HasSuffix(m.Name(), suffix) {
				names = append(names, strings.TrimSuffix(m.Name(), suffix))
			}
		}
	}
	names = Unique(names)
	sort.Strings(names)
	return names, nil
}

// Unique returns a new slice containing only the unique elements from the input slice.
func Unique(slice []string) []string {
	visited := make(map[string]bool)
	uniqueSlice := make([]string, 0)
	for _, element := range slice {
		if !visited[element] {
			uniqueSlice = append(uniqueSlice, element)
			visited[element] = true
		}
	}
	return uniqueSlice
}
