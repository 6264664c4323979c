package storage

import (
	"Recipe-Finder/internal/utils"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	AllowImage = []string{"image/jpeg", "image/png", "image/webp"}

	ErrContentTypeNotAllowed = errors.New("content type not allowed")
)

type AwsS3 struct {
	Client     *s3.Client
	BucketName string
	Region     string
}

func NewAwsS3() AwsS3 {
	region := utils.GetConfig("AWS_S3_REGION")
	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				utils.GetConfig("AWS_ACCESS_KEY"),
				utils.GetConfig("AWS_SECRET_KEY"),
				"",
			),
		),
	)
	if err != nil {
		return AwsS3{}
	}

	return AwsS3{
		Client:     s3.NewFromConfig(cfg),
		BucketName: utils.GetConfig("AWS_S3_BUCKET"),
		Region:     region,
	}
}

func allowedContentType(contentType string, allowed []string) bool {
	for _, a := range allowed {
		if contentType == a {
			return true
		}
	}
	return false
}

func (a AwsS3) UploadFile(fileName string, file *multipart.FileHeader, dir string, contentTypes ...string) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if len(contentTypes) > 0 && !allowedContentType(contentType, contentTypes) {
		return "", ErrContentTypeNotAllowed
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	objectKey := fileName + filepath.Ext(file.Filename)
	if dir != "" {
		objectKey = dir + "/" + objectKey
	}

	_, err = a.Client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(a.BucketName),
		Key:         aws.String(objectKey),
		Body:        src,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (a AwsS3) UpdateFile(objectKey string, file *multipart.FileHeader, contentTypes ...string) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if len(contentTypes) > 0 && !allowedContentType(contentType, contentTypes) {
		return "", ErrContentTypeNotAllowed
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	_, err = a.Client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(a.BucketName),
		Key:         aws.String(objectKey),
		Body:        src,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (a AwsS3) DeleteFile(objectKey string) error {
	_, err := a.Client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(a.BucketName),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a AwsS3) GetPublicLink(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.BucketName, a.Region, objectKey)
}

func (a AwsS3) GetObjectKeyFromLink(link string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", a.BucketName, a.Region)
	return strings.TrimPrefix(link, prefix)
}
