package uploader

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"course_market/internal/pkg/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

type Uploader interface {
	UploadFile(file *multipart.FileHeader) (string, error)
}

// AliyunOSSUploader 课程内容资源（视频、文档）上传
type AliyunOSSUploader struct {
	client *oss.Client
	bucket *oss.Bucket
	config config.OSSConfig
}

func NewAliyunOSSUploader() (*AliyunOSSUploader, error) {
	cfg := config.GlobalConfig.OSS
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, err
	}

	bucket, err := client.Bucket(cfg.BucketName)
	if err != nil {
		return nil, err
	}

	return &AliyunOSSUploader{
		client: client,
		bucket: bucket,
		config: cfg,
	}, nil
}

func (u *AliyunOSSUploader) UploadFile(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// 生成唯一文件名: courses/YYYYMMDD/uuid.ext
	ext := filepath.Ext(file.Filename)
	filename := fmt.Sprintf("courses/%s/%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)

	if err = u.bucket.PutObject(filename, src); err != nil {
		return "", err
	}

	// 假设 bucket 为 public-read 或走 CDN；私有桶需要改为签名 URL
	url := fmt.Sprintf("https://%s.%s/%s", u.config.BucketName, u.config.Endpoint, filename)
	return url, nil
}

// GlobalUploader instance
var GlobalUploader Uploader

func InitUploader() error {
	uploader, err := NewAliyunOSSUploader()
	if err != nil {
		return err
	}
	GlobalUploader = uploader
	return nil
}
