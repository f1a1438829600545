// Package remotefile is an api.FileOpener backed by S3, grounded on
// icedb's s3_helper.ReadBytesFromS3: a session built from
// aws.Config/credentials.NewEnvCredentials, object bytes fetched with
// s3manager's downloader. Unlike localfile, a GRIB1 message's random
// reads against a remote object are serviced out of a full in-memory
// buffer of the object's bytes -- S3 has no cheap seek-then-read, and
// GRIB1 files in this deployment are small enough (one forecast run's
// worth of messages) that buffering the whole object is the simplest
// correct choice.
package remotefile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/gribio/gribds/grib/api"
)

// Set maps dense file numbers to S3 object keys within one bucket.
type Set struct {
	Bucket   string
	Region   string
	Endpoint string // "" uses the AWS default
	Keys     []string

	mu        sync.Mutex
	sess      *session.Session
	cache     map[int][]byte
	downloads map[int]*sync.Once
}

// NewSet builds a file-number-to-object-key mapping over one bucket.
func NewSet(bucket, region string, keys []string) *Set {
	return &Set{
		Bucket:    bucket,
		Region:    region,
		Keys:      keys,
		cache:     map[int][]byte{},
		downloads: map[int]*sync.Once{},
	}
}

func (s *Set) session() (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess != nil {
		return s.sess, nil
	}
	cfg := &aws.Config{
		Region:      aws.String(s.Region),
		Credentials: credentials.NewEnvCredentials(),
	}
	if s.Endpoint != "" {
		cfg.Endpoint = aws.String(s.Endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("remotefile: new session: %w", err)
	}
	s.sess = sess
	return sess, nil
}

func (s *Set) fetch(fileno int) ([]byte, error) {
	s.mu.Lock()
	once, ok := s.downloads[fileno]
	if !ok {
		once = &sync.Once{}
		s.downloads[fileno] = once
	}
	s.mu.Unlock()

	var fetchErr error
	once.Do(func() {
		sess, err := s.session()
		if err != nil {
			fetchErr = err
			return
		}
		downloader := s3manager.NewDownloader(sess)
		buf := &aws.WriteAtBuffer{}
		_, err = downloader.DownloadWithContext(context.Background(), buf, &s3.GetObjectInput{
			Bucket: aws.String(s.Bucket),
			Key:    aws.String(s.Keys[fileno]),
		})
		if err != nil {
			fetchErr = fmt.Errorf("remotefile: download %s/%s: %w", s.Bucket, s.Keys[fileno], err)
			return
		}
		s.mu.Lock()
		s.cache[fileno] = buf.Bytes()
		s.mu.Unlock()
	})

	if fetchErr != nil {
		return nil, fetchErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.cache[fileno]
	if !ok {
		return nil, fmt.Errorf("remotefile: fileno %d failed on an earlier call", fileno)
	}
	return b, nil
}

// Open implements api.FileOpener.
func (s *Set) Open(fileno int) (api.ReadSeekCloser, error) {
	if fileno < 0 || fileno >= len(s.Keys) {
		return nil, fmt.Errorf("remotefile: fileno %d out of range [0,%d)", fileno, len(s.Keys))
	}
	b, err := s.fetch(fileno)
	if err != nil {
		return nil, err
	}
	return &memHandle{r: bytes.NewReader(b)}, nil
}

type memHandle struct {
	r *bytes.Reader
}

func (h *memHandle) Read(p []byte) (int, error) { return h.r.Read(p) }
func (h *memHandle) Seek(off int64, whence int) (int64, error) {
	return h.r.Seek(off, whence)
}
func (h *memHandle) Close() error { return nil }

var _ io.ReadSeekCloser = (*memHandle)(nil)
