// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"context"
	"time"

	"github.com/tfctl/csvdiff/internal/aws"
	"github.com/tfctl/csvdiff/internal/cacheutil"
	"github.com/tfctl/csvdiff/internal/config"
	"github.com/tfctl/csvdiff/internal/log"
	"github.com/tfctl/csvdiff/internal/table"
)

// newGetter builds the S3 client. Tests swap it for a fake.
var newGetter = func(ctx context.Context, opts Options) (aws.ObjectGetter, error) {
	return aws.NewClient(ctx,
		aws.WithProfile(opts.Profile),
		aws.WithRegion(opts.Region),
		aws.WithEndpoint(opts.Endpoint))
}

func openS3(ctx context.Context, spec string, opts Options) (*table.Dataset, error) {
	obj, err := aws.ParseURI(spec)
	if err != nil {
		return nil, err
	}

	data, err := fetchS3(ctx, obj, opts)
	if err != nil {
		return nil, err
	}
	return table.Read(bytes.NewReader(data), obj.String(), opts.tableOptions())
}

// fetchS3 returns the object body. Only versioned objects go through the
// cache; an unversioned key may change under us.
func fetchS3(ctx context.Context, obj aws.Object, opts Options) ([]byte, error) {
	var cache *cacheutil.Cache
	if obj.VersionID != "" {
		if c, ok := cacheutil.Open(); ok {
			cache = c
			purge(cache)
			if data, hit := cache.Get(obj.String()); hit {
				return data, nil
			}
		}
	}

	svc, err := newGetter(ctx, opts)
	if err != nil {
		return nil, err
	}
	data, err := aws.Fetch(ctx, svc, obj)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.Put(obj.String(), data); err != nil {
			log.WithError(err).Warnf("failed to cache %s", obj)
		}
	}
	return data, nil
}

// purge drops cache entries older than cache.clean hours.
func purge(cache *cacheutil.Cache) {
	hours, err := config.GetInt("cache.clean", 0)
	if err != nil {
		log.WithError(err).Warnf("ignoring cache.clean")
		return
	}
	if n, err := cache.Purge(time.Duration(hours) * time.Hour); err != nil {
		log.WithError(err).Warnf("cache purge failed")
	} else if n > 0 {
		log.Debugf("purged %d cache entries", n)
	}
}
