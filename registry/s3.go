package registry

import (
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

// S3Remote fetches manifests and archives from an S3-compatible object
// store, the registry's one remote backend.
type S3Remote struct {
	Bucket     string
	downloader *s3manager.Downloader
}

// NewS3Remote builds an S3Remote for bucket, using the default AWS
// credential chain and region resolution.
func NewS3Remote(bucket string) (*S3Remote, error) {
	sess, err := session.NewSessionWithOptions(session.Options{SharedConfigState: session.SharedConfigEnable})
	if err != nil {
		return nil, errors.Wrap(err, "open aws session")
	}
	return &S3Remote{Bucket: bucket, downloader: s3manager.NewDownloader(sess)}, nil
}

func (r *S3Remote) download(key string) ([]byte, error) {
	buf := aws.NewWriteAtBuffer(nil)
	_, err := r.downloader.Download(buf, &s3.GetObjectInput{
		Bucket: aws.String(r.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "download s3://%s/%s", r.Bucket, key)
	}
	return buf.Bytes(), nil
}

// FetchManifest downloads "<name>/manifest.json" and parses it, returning
// both the parsed manifest and its raw bytes (needed unmodified for
// signature verification).
func (r *S3Remote) FetchManifest(name string) (*Manifest, []byte, error) {
	body, err := r.download(path.Join(name, "manifest.json"))
	if err != nil {
		return nil, nil, notFound(name)
	}
	m, err := parseManifest(body)
	if err != nil {
		return nil, nil, err
	}
	return m, body, nil
}

// FetchArchive downloads the gzip archive a manifest points at.
func (r *S3Remote) FetchArchive(m *Manifest) ([]byte, error) {
	return r.download(m.Archive)
}
