package aws

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func GetS3Client() *s3.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Printf("Could not load default config: %s\n", err.Error())
		return nil
	}
	svc := s3.NewFromConfig(cfg)
	return svc
}

func S3UploadAsset(ctx context.Context, name string, f string) error {
	assetsBucket := os.Getenv("S3_ASSETS_BUCKET")
	file, err := os.Open(f)
	if err != nil {
		log.Printf("Could not open file to upload: %s\n", err.Error())
		return err
	}
	defer file.Close()
	client := GetS3Client()
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(assetsBucket),
		Key:         aws.String(name),
		Body:        file,
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		log.Printf("Could not put object to S3 bucket: %s\n", err.Error())
		return err
	}
	err = s3.NewObjectExistsWaiter(client).Wait(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(assetsBucket),
		Key:    aws.String(name),
	}, time.Minute)
	if err != nil {
		log.Printf("Failed attempt to wait for object %s to exist: %s\n", name, err.Error())
		return err
	}
	log.Printf("Added object '%s' to bucket '%s'", name, assetsBucket)
	return nil
}

func S3DeleteAsset(ctx context.Context, name string) error {
	assetsBucket := os.Getenv("S3_ASSETS_BUCKET")
	client := GetS3Client()
	_, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(assetsBucket),
		Key:    aws.String(name),
	})
	if err != nil {
		log.Printf("Could not delete object from S3 bucket: %s\n", err.Error())
		return err
	}
	return nil
}

func S3PresignAsset(ctx context.Context, name string) (string, error) {
	assetsBucket := os.Getenv("S3_ASSETS_BUCKET")
	client := GetS3Client()
	pre := s3.NewPresignClient(client)
	r, err := pre.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(assetsBucket),
		Key:    aws.String(name),
	}, func(po *s3.PresignOptions) {
		po.Expires = time.Duration(3600 * time.Second)
	})
	if err != nil {
		log.Printf("Could not generate presigned URL for object [%s]: %s\n", name, err.Error())
		return "", err
	}
	return r.URL, nil
}

// AssetStore satisfies the catalog's image store contract on top of
// the S3 helpers above.
type AssetStore struct{}

func NewAssetStore() *AssetStore {
	return &AssetStore{}
}

func (s *AssetStore) Upload(ctx context.Context, key string, filepath string) error {
	return S3UploadAsset(ctx, key, filepath)
}

func (s *AssetStore) SignedURL(ctx context.Context, key string) (string, error) {
	return S3PresignAsset(ctx, key)
}

func (s *AssetStore) Delete(ctx context.Context, key string) error {
	return S3DeleteAsset(ctx, key)
}
