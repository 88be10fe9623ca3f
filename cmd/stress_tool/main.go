package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Config
const (
	BaseURL     = "http://localhost:8080"
	Concurrency = 200 // 同一个用户的并发加购请求数
)

var (
	token      string
	courseID   string
	httpClient *http.Client
)

func init() {
	// 优化 HTTP Client 配置
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 500
	t.MaxIdleConnsPerHost = 500
	t.MaxConnsPerHost = 500
	httpClient = &http.Client{
		Transport: t,
		Timeout:   10 * time.Second,
	}
}

// 同一用户并发加购同一门课程，验证分布式锁下只会成功一次
// 其余请求应返回"已在购物车"或"稍后重试"
func main() {
	// 1. 注册压测用户并建一门课
	token = signup()
	courseID = pickCourse()
	if courseID == "" {
		fmt.Println("没有可用课程，请先造一门课")
		return
	}

	fmt.Printf("开始压测：%d 个并发请求加购同一门课程 (CourseID: %s)...\n", Concurrency, courseID)
	time.Sleep(1 * time.Second)

	// 2. 并发加购
	var wg sync.WaitGroup
	added := 0
	duplicated := 0
	busy := 0
	other := 0
	var mu sync.Mutex

	start := time.Now()

	for i := 0; i < Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status := addToCart()
			mu.Lock()
			switch status {
			case http.StatusOK:
				added++
			case http.StatusConflict:
				duplicated++
			case http.StatusTooManyRequests:
				busy++
			default:
				other++
			}
			mu.Unlock()
		}()
	}

	wg.Wait()
	duration := time.Since(start)
	qps := float64(Concurrency) / duration.Seconds()

	fmt.Println("--------------------------------------------------")
	fmt.Printf("压测结束，耗时: %v\n", duration)
	fmt.Printf("总请求数: %d\n", Concurrency)
	fmt.Printf("QPS: %.2f\n", qps)
	fmt.Printf("加购成功: %d (预期: 1)\n", added)
	fmt.Printf("重复拒绝: %d\n", duplicated)
	fmt.Printf("锁冲突: %d\n", busy)
	fmt.Printf("其他失败: %d\n", other)
	fmt.Println("--------------------------------------------------")
}

func signup() string {
	payload := map[string]string{
		"username": fmt.Sprintf("stress_%d", time.Now().UnixNano()),
		"email":    fmt.Sprintf("stress_%d@example.com", time.Now().UnixNano()),
		"password": "stress_test_123",
	}
	body, _ := json.Marshal(payload)

	resp, err := httpClient.Post(BaseURL+"/api/auth/signup", "application/json", bytes.NewReader(body))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	var result struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	raw, _ := io.ReadAll(resp.Body)
	json.Unmarshal(raw, &result)
	return result.Data.Token
}

func pickCourse() string {
	req, _ := http.NewRequest(http.MethodGet, BaseURL+"/api/taker/courses?page=1&limit=1", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	var result struct {
		Data struct {
			List []struct {
				ID string `json:"id"`
			} `json:"list"`
		} `json:"data"`
	}
	raw, _ := io.ReadAll(resp.Body)
	json.Unmarshal(raw, &result)

	if len(result.Data.List) == 0 {
		return ""
	}
	return result.Data.List[0].ID
}

func addToCart() int {
	payload := map[string]string{"courseId": courseID}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, BaseURL+"/api/taker/cart/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode
}
