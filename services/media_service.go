package services

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"mime/multipart"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	fig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/techagentng/cityalert/config"
	apiError "github.com/techagentng/cityalert/errors"
	"github.com/techagentng/cityalert/services/utils"
)

const thumbnailWidth = 200

type MediaService interface {
	UploadFileToS3(mediaFile *multipart.FileHeader, folderName string) (string, error)
	UploadBytesToS3(data []byte, fileName, folderName, contentType string) (string, error)
	ValidateSquarePicture(mediaFile *multipart.FileHeader, maxDim int) error
	GenerateImageThumbnail(mediaFile *multipart.FileHeader) ([]byte, error)
}

type mediaService struct {
	Config *config.Config
}

func NewMediaService(conf *config.Config) MediaService {
	return &mediaService{Config: conf}
}

func (m *mediaService) s3Client() (*s3.Client, error) {
	cfg, err := fig.LoadDefaultConfig(context.TODO(),
		fig.WithRegion(m.region()),
		fig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"), ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %v", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func (m *mediaService) region() string {
	if m.Config.AwsRegion != "" {
		return m.Config.AwsRegion
	}
	return os.Getenv("AWS_REGION")
}

func (m *mediaService) bucket() string {
	if m.Config.AwsBucket != "" {
		return m.Config.AwsBucket
	}
	return os.Getenv("AWS_BUCKET")
}

func (m *mediaService) UploadFileToS3(mediaFile *multipart.FileHeader, folderName string) (string, error) {
	file, err := mediaFile.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	fileKey := fmt.Sprintf("%s/%s", folderName, utils.GenerateUniqueFilename(mediaFile.Filename))
	bucketName := m.bucket()

	svc, err := m.s3Client()
	if err != nil {
		return "", err
	}

	putObjectInput := &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(fileKey),
		Body:        file,
		ACL:         "public-read",
		ContentType: aws.String(mediaFile.Header.Get("Content-Type")),
	}
	if _, err := svc.PutObject(context.TODO(), putObjectInput); err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, m.region(), fileKey), nil
}

func (m *mediaService) UploadBytesToS3(data []byte, fileName, folderName, contentType string) (string, error) {
	fileKey := fmt.Sprintf("%s/%s", folderName, fileName)
	bucketName := m.bucket()

	svc, err := m.s3Client()
	if err != nil {
		return "", err
	}

	putObjectInput := &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(fileKey),
		Body:        bytes.NewReader(data),
		ACL:         "public-read",
		ContentType: aws.String(contentType),
	}
	if _, err := svc.PutObject(context.TODO(), putObjectInput); err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, m.region(), fileKey), nil
}

// ValidateSquarePicture enforces the catalog picture rules: JPG or PNG,
// square, and no side longer than maxDim pixels.
func (m *mediaService) ValidateSquarePicture(mediaFile *multipart.FileHeader, maxDim int) error {
	ext := strings.ToLower(mediaFile.Filename)
	if !strings.HasSuffix(ext, ".jpg") && !strings.HasSuffix(ext, ".jpeg") && !strings.HasSuffix(ext, ".png") {
		return apiError.New("picture must be a JPG or PNG file", 400)
	}

	file, err := mediaFile.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		return apiError.New("picture could not be decoded", 400)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width != height {
		return apiError.New("picture must be square", 400)
	}
	if width > maxDim {
		return apiError.New(fmt.Sprintf("picture must be at most %dx%d pixels", maxDim, maxDim), 400)
	}
	return nil
}

// GenerateImageThumbnail downscales an uploaded image to the listing
// thumbnail width, returning JPEG bytes.
func (m *mediaService) GenerateImageThumbnail(mediaFile *multipart.FileHeader) ([]byte, error) {
	file, err := mediaFile.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}

	thumb := resize.Resize(thumbnailWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %v", err)
	}
	return buf.Bytes(), nil
}
