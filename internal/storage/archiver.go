package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"rental-backend/internal/config"
)

// Archiver copies rendered documents to an S3-compatible bucket so issued
// invoices survive independently of the database. Nil when unconfigured;
// every method is a no-op on a nil receiver.
type Archiver struct {
	client *s3.Client
	bucket string
}

func New(ctx context.Context, cfg *config.Config) (*Archiver, error) {
	if cfg.Archive.Bucket == "" || cfg.Archive.AccessKey == "" {
		log.Printf("[Archive] not configured, document archiving disabled")
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey, cfg.Archive.SecretKey, "")),
		awsconfig.WithRegion(cfg.Archive.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("archive config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Archive.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Archive.Endpoint)
		}
	})
	return &Archiver{client: client, bucket: cfg.Archive.Bucket}, nil
}

// StoreInvoice uploads a rendered invoice PDF under invoices/<number>.pdf.
func (a *Archiver) StoreInvoice(ctx context.Context, invoiceNumber string, pdf []byte) error {
	if a == nil {
		return nil
	}
	return a.put(ctx, fmt.Sprintf("invoices/%s.pdf", invoiceNumber), pdf)
}

// StoreStatement uploads a rendered statement PDF under
// statements/<tenant>/<year>-<month>.pdf.
func (a *Archiver) StoreStatement(ctx context.Context, tenantID string, year, month int, pdf []byte) error {
	if a == nil {
		return nil
	}
	return a.put(ctx, fmt.Sprintf("statements/%s/%d-%02d.pdf", tenantID, year, month), pdf)
}

func (a *Archiver) put(ctx context.Context, key string, body []byte) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("archive upload %s: %w", key, err)
	}
	log.Printf("[Archive] stored %s (%d bytes)", key, len(body))
	return nil
}
