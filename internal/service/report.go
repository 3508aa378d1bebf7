package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"exusiai.dev/forecast-next/internal/app/appconfig"
	"exusiai.dev/forecast-next/internal/core/forecast"
	"exusiai.dev/forecast-next/internal/pkg/observability"
)

const reportS3Prefix = "reports/"

// Report renders combined forecasts as a plain-text summary and writes it to
// the local report path and, when configured, an S3 bucket.
type Report struct {
	Config *appconfig.Config

	s3Client *s3.Client
}

func NewReport(conf *appconfig.Config) (*Report, error) {
	r := &Report{Config: conf}
	if conf.ReportS3Bucket == "" {
		return r, nil
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(conf.ReportS3Region),
	}
	if conf.AWSAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AWSAccessKey, conf.AWSSecretKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load aws config")
	}
	r.s3Client = s3.NewFromConfig(cfg)

	return r, nil
}

// Render formats one line per district:
// "District {i} {candidateA} {pctA} {candidateB} {pctB}".
func (s *Report) Render(res *forecast.CombinedResult) ([]byte, error) {
	var buf bytes.Buffer
	for _, p := range res.Projections {
		a, b, err := forecast.DistrictPercents(p)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "District %d %s %d %s %d\n", p.District, s.Config.CandidateAName, a, s.Config.CandidateBName, b)
	}
	return buf.Bytes(), nil
}

// Write renders res and stores it in every configured sink. Every sink is
// attempted; the first failure is returned.
func (s *Report) Write(ctx context.Context, res *forecast.CombinedResult) error {
	body, err := s.Render(res)
	if err != nil {
		return err
	}

	var firstErr error
	if s.Config.ReportPath != "" {
		err := writeFileAtomic(s.Config.ReportPath, body)
		observability.ReportWrites.WithLabelValues("file", observability.Result(err)).Inc()
		if err != nil {
			firstErr = errors.Wrapf(err, "failed to write report to %s", s.Config.ReportPath)
		} else {
			log.Debug().
				Str("evt.name", "forecast.report.written").
				Str("path", s.Config.ReportPath).
				Str("runId", res.RunID).
				Msg("combined forecast report written")
		}
	}

	if s.s3Client != nil {
		err := s.upload(ctx, res.RunID, body)
		observability.ReportWrites.WithLabelValues("s3", observability.Result(err)).Inc()
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (s *Report) upload(ctx context.Context, runID string, body []byte) error {
	key := reportS3Prefix + runID + ".txt"
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Config.ReportS3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to upload report to s3://%s/%s", s.Config.ReportS3Bucket, key)
	}

	log.Info().
		Str("evt.name", "forecast.report.uploaded").
		Str("bucket", s.Config.ReportS3Bucket).
		Str("key", key).
		Msg("combined forecast report uploaded")
	return nil
}

// writeFileAtomic replaces path with data through a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
