// ec2search/output
// MIT License Copyright(c) 2026 Hiroshi Shimamoto
// vim:set sw=4 sts=4:

// Package output stores the rendered report to a local file or to S3.
package output

import (
    "bytes"
    "context"
    "errors"
    "fmt"
    "os"
    "strings"

    "github.com/aws/aws-sdk-go-v2/aws"
    "github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Scheme = "s3://"

var (
    ErrBadS3URL = errors.New("bad s3 url")
    ErrNoClient = errors.New("no s3 client")
)

// PutObjectAPI is the part of *s3.Client used here.
type PutObjectAPI interface {
    PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// IsS3 reports whether dest names an S3 object.
func IsS3(dest string) bool {
    return strings.HasPrefix(dest, s3Scheme)
}

// ParseS3URL splits s3://bucket/key.
func ParseS3URL(dest string) (string, string, error) {
    if !IsS3(dest) {
	return "", "", fmt.Errorf("%w: %s", ErrBadS3URL, dest)
    }
    bucket, key, ok := strings.Cut(strings.TrimPrefix(dest, s3Scheme), "/")
    if !ok || bucket == "" || key == "" || strings.HasSuffix(key, "/") {
	return "", "", fmt.Errorf("%w: %s", ErrBadS3URL, dest)
    }
    return bucket, key, nil
}

// Save writes data to dest in one go.
// client is only used, and then required, for s3:// destinations.
func Save(ctx context.Context, dest string, data []byte, client PutObjectAPI) error {
    if !IsS3(dest) {
	if err := os.WriteFile(dest, data, 0644); err != nil {
	    return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
    }
    bucket, key, err := ParseS3URL(dest)
    if err != nil {
	return err
    }
    if client == nil {
	return ErrNoClient
    }
    _, err = client.PutObject(ctx, &s3.PutObjectInput{
	Bucket:      aws.String(bucket),
	Key:         aws.String(key),
	Body:        bytes.NewReader(data),
	ContentType: aws.String("text/csv"),
    })
    if err != nil {
	return fmt.Errorf("PutObject %s: %w", dest, err)
    }
    return nil
}
