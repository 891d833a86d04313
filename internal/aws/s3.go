// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/csvdiff/internal/log"
)

// options holds optional overrides for AWS config loading.
type options struct {
	profile  string
	region   string
	endpoint string
}

// Option customizes how AWS config is loaded. Without options the shell's AWS
// setup is inherited (AWS_PROFILE, shared config, env, IMDS).
type Option func(*options)

// WithProfile sets the shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint points the S3 client at an S3 compatible service. Path style
// addressing is used when set.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// ObjectGetter is the part of the S3 client used to fetch snapshots.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// Object addresses one S3 object, optionally pinned to a version.
type Object struct {
	Bucket    string
	Key       string
	VersionID string
}

func (o Object) String() string {
	s := "s3://" + o.Bucket + "/" + o.Key
	if o.VersionID != "" {
		s += "?versionId=" + o.VersionID
	}
	return s
}

// ParseURI parses s3://bucket/key[?versionId=id].
func ParseURI(uri string) (Object, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return Object{}, fmt.Errorf("invalid S3 URI %q: %w", uri, err)
	}
	if u.Scheme != "s3" {
		return Object{}, fmt.Errorf("invalid S3 URI %q: scheme must be s3", uri)
	}

	obj := Object{
		Bucket:    u.Host,
		Key:       strings.TrimPrefix(u.Path, "/"),
		VersionID: u.Query().Get("versionId"),
	}
	if obj.Bucket == "" || obj.Key == "" {
		return Object{}, fmt.Errorf("invalid S3 URI %q: bucket and key are required", uri)
	}
	return obj, nil
}

// NewClient loads AWS config and builds an S3 client from it.
func NewClient(ctx context.Context, opts ...Option) (*s3v2.Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("aws opts: profile=%s, region=%s, endpoint=%s", o.profile, o.region, o.endpoint)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3v2.NewFromConfig(cfg, func(so *s3v2.Options) {
		if o.endpoint != "" {
			so.BaseEndpoint = awsv2.String(o.endpoint)
			so.UsePathStyle = true
		}
	})
	log.Debugf("s3 client created")
	return client, nil
}

// Fetch reads the whole body of obj.
func Fetch(ctx context.Context, svc ObjectGetter, obj Object) ([]byte, error) {
	input := &s3v2.GetObjectInput{
		Bucket: awsv2.String(obj.Bucket),
		Key:    awsv2.String(obj.Key),
	}
	if obj.VersionID != "" {
		input.VersionId = awsv2.String(obj.VersionID)
	}

	result, err := svc.GetObject(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", obj, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", obj, err)
	}
	log.Debugf("fetched %s: %d bytes", obj, len(data))
	return data, nil
}
