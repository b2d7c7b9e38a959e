// Package uploads stores submission attachments in a GridFS bucket. The
// bucket is constructed once at startup and injected — binaries are durably
// stored before the submission document referencing them is written.
package uploads

import (
	"fmt"
	"io"
	"time"

	"Backend-FormDesk/src/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Service struct {
	bucket *gridfs.Bucket
}

func NewService(m *database.Mongo) (*Service, error) {
	bucket, err := gridfs.NewBucket(m.DB, options.GridFSBucket().SetName(database.UploadsBucket))
	if err != nil {
		return nil, fmt.Errorf("create gridfs bucket: %w", err)
	}
	return &Service{bucket: bucket}, nil
}

// Store writes one attachment and returns its file id. The stored filename
// is prefixed with a timestamp so originals with equal names never collide.
func (s *Service) Store(fieldName, originalName string, r io.Reader) (primitive.ObjectID, error) {
	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), originalName)
	opts := options.GridFSUpload().SetMetadata(bson.M{
		"originalname": originalName,
		"fieldName":    fieldName,
	})

	id, err := s.bucket.UploadFromStream(filename, r, opts)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("gridfs upload: %w", err)
	}
	return id, nil
}

// Open streams a stored file by id.
func (s *Service) Open(id primitive.ObjectID) (io.ReadCloser, error) {
	stream, err := s.bucket.OpenDownloadStream(id)
	if err != nil {
		if err == gridfs.ErrFileNotFound || err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("gridfs open: %w", err)
	}
	return stream, nil
}

// Copy writes a stored file to w.
func (s *Service) Copy(id primitive.ObjectID, w io.Writer) (int64, error) {
	return s.bucket.DownloadToStream(id, w)
}

// Delete removes a stored file. Used to roll back already-stored binaries
// when the submission itself is rejected.
func (s *Service) Delete(id primitive.ObjectID) error {
	return s.bucket.Delete(id)
}
