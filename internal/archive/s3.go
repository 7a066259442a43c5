// Package archive fetches document text from object storage and keeps an
// audit copy of every merge: the extracted local graph and the
// reconciliation log, keyed by document id.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Verridian-ai/legal-gsw/internal/util"
	"github.com/Verridian-ai/legal-gsw/pkg/gsw"
	"github.com/Verridian-ai/legal-gsw/pkg/reconcile"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func NewS3Client(ctx context.Context) *s3.Client {
	region := util.GetEnv("AWS_REGION")
	endpoint := util.GetEnv("AWS_ENDPOINT")
	accessKey := util.GetEnv("AWS_ACCESS_KEY")
	secretKey := util.GetEnv("AWS_SECRET_KEY")
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(region),
		config.WithBaseEndpoint(endpoint),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)),
	)
	if err != nil {
		return nil
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return client
}

// Archive reads documents from and writes merge records to a single bucket.
type Archive struct {
	client *s3.Client
	bucket string
}

// ArchiveParams contains configuration for creating an Archive.
type ArchiveParams struct {
	Client *s3.Client
	// Bucket defaults to AWS_BUCKET when empty.
	Bucket string
}

// NewArchive creates an Archive.
func NewArchive(params ArchiveParams) *Archive {
	bucket := params.Bucket
	if bucket == "" {
		bucket = util.GetEnv("AWS_BUCKET")
	}
	return &Archive{client: params.Client, bucket: bucket}
}

// FetchDocument downloads the raw text of one document by storage key.
func (a *Archive) FetchDocument(ctx context.Context, key string) ([]byte, error) {
	result, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get document from S3: %w", err)
	}
	defer result.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, result.Body); err != nil {
		return nil, fmt.Errorf("failed to read document contents: %w", err)
	}
	return buf.Bytes(), nil
}

// mergeRecord is what gets archived per reconciled document.
type mergeRecord struct {
	DocumentID string          `json:"document_id"`
	LocalGraph *gsw.LocalGraph `json:"local_graph"`
	Log        *reconcile.Log  `json:"log"`
}

// StoreMergeRecord writes the local graph and reconciliation log for a
// document under audit/<documentID>.json so every merge decision can be
// audited later.
func (a *Archive) StoreMergeRecord(
	ctx context.Context,
	documentID string,
	local *gsw.LocalGraph,
	log *reconcile.Log,
) error {
	record := mergeRecord{
		DocumentID: documentID,
		LocalGraph: local,
		Log:        log,
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal merge record: %w", err)
	}

	key := fmt.Sprintf("audit/%s.json", documentID)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload merge record to S3: %w", err)
	}
	return nil
}

// ListMergeRecords returns the storage keys of all archived merge records.
func (a *Archive) ListMergeRecords(ctx context.Context) ([]string, error) {
	var keys []string
	listInput := &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String("audit/"),
	}

	for {
		listOutput, err := a.client.ListObjectsV2(ctx, listInput)
		if err != nil {
			return nil, fmt.Errorf("failed to list merge records: %w", err)
		}

		for _, obj := range listOutput.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}

		if listOutput.IsTruncated != nil && *listOutput.IsTruncated {
			listInput.ContinuationToken = listOutput.NextContinuationToken
		} else {
			break
		}
	}

	return keys, nil
}
