package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/colinmarc/hdfs/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const hdfsRoot = "/property-images"

// FileStorage keeps property images in HDFS, one directory per property.
type FileStorage struct {
	client *hdfs.Client
	logger *logrus.Logger
	tracer trace.Tracer
}

func New(logger *logrus.Logger, tracer trace.Tracer) (*FileStorage, error) {
	hdfsUri := os.Getenv("HDFS_URI")

	client, err := hdfs.New(hdfsUri)
	if err != nil {
		logger.Error(err)
		return nil, err
	}

	return &FileStorage{
		client: client,
		logger: logger,
		tracer: tracer,
	}, nil
}

func (fs *FileStorage) Close() {
	fs.client.Close()
}

func (fs *FileStorage) CreateDirectoriesStart() error {
	err := fs.client.MkdirAll(hdfsRoot, 0644)
	if err != nil {
		fs.logger.Println(err)
		return err
	}
	return nil
}

func (fs *FileStorage) CreateDirectory(propertyID string) error {
	folderPath := path.Join(hdfsRoot, propertyID)
	err := fs.client.MkdirAll(folderPath, 0644)
	if err != nil {
		fs.logger.Printf("Error creating directory %s: %v", folderPath, err)
		return err
	}
	return nil
}

func (fs *FileStorage) SaveImage(ctx context.Context, propertyID, imageName string, imageContent []byte) error {
	ctx, span := fs.tracer.Start(ctx, "FileStorage.SaveImage")
	defer span.End()

	imagePath := path.Join(hdfsRoot, propertyID, imageName)

	if err := fs.CreateDirectory(propertyID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	file, err := fs.client.Create(imagePath)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		fs.logger.Printf("Error creating file %s: %v", imagePath, err)
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			span.SetStatus(codes.Error, closeErr.Error())
			fs.logger.Printf("Error closing file: %v", closeErr)
		}
	}()

	if _, err := file.Write(imageContent); err != nil {
		span.SetStatus(codes.Error, err.Error())
		fs.logger.Printf("Error writing image content: %v", err)
		return err
	}

	return nil
}

// PublicURL is the path a caller serves the image from, relative to the
// image-content endpoint.
func (fs *FileStorage) PublicURL(propertyID, imageName string) string {
	return path.Join("/properties", propertyID, "images", imageName)
}

func (fs *FileStorage) GetImageNames(ctx context.Context, propertyID string) ([]string, error) {
	ctx, span := fs.tracer.Start(ctx, "FileStorage.GetImageNames")
	defer span.End()

	folderPath := path.Join(hdfsRoot, propertyID)
	var imageNames []string

	callbackFunc := func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			fs.logger.Println(err)
			return err
		}
		if !info.IsDir() {
			imageNames = append(imageNames, path.Base(filePath))
		}
		return nil
	}

	err := fs.client.Walk(folderPath, callbackFunc)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		fs.logger.Println(err)
		return nil, err
	}

	return imageNames, nil
}

func (fs *FileStorage) GetImageContent(ctx context.Context, propertyID, imageName string) ([]byte, error) {
	ctx, span := fs.tracer.Start(ctx, "FileStorage.GetImageContent")
	defer span.End()

	fullPath := path.Join(hdfsRoot, propertyID, imageName)

	file, err := fs.client.Open(fullPath)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		fs.logger.Println(err)
		return nil, fmt.Errorf("error opening file: %v", err)
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		fs.logger.Println(err)
		return nil, fmt.Errorf("error reading file: %v", err)
	}

	return imageData, nil
}
