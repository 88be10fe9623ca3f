package worker

import (
	"log"
	"time"
)

// NotifyTask 站内信推送任务
type NotifyTask struct {
	MessageID string
	AccountID string // 推送目标（讲师）账号
	Title     string
	Body      string
	Retry     int // 重试次数
}

// TaskProcessor 任务处理器，由调用方注入具体推送逻辑
type TaskProcessor interface {
	Process(task NotifyTask) error
}

type WorkerPool struct {
	TaskQueue  chan NotifyTask
	RetryQueue chan NotifyTask // 重试队列
	Processor  TaskProcessor
	WorkerNum  int
	MaxRetry   int // 最大重试次数
}

func NewWorkerPool(processor TaskProcessor, workerNum int, bufferSize int) *WorkerPool {
	return &WorkerPool{
		TaskQueue:  make(chan NotifyTask, bufferSize),
		RetryQueue: make(chan NotifyTask, bufferSize/2),
		Processor:  processor,
		WorkerNum:  workerNum,
		MaxRetry:   3, // 最多重试3次
	}
}

func (p *WorkerPool) Start() {
	for i := 0; i < p.WorkerNum; i++ {
		go p.worker(i)
	}
	// 启动重试处理协程
	go p.retryWorker()
	log.Printf("Worker pool started with %d workers", p.WorkerNum)
}

func (p *WorkerPool) worker(id int) {
	for task := range p.TaskQueue {
		if err := p.Processor.Process(task); err != nil {
			log.Printf("[Worker %d] Failed to process task (MessageID: %s): %v", id, task.MessageID, err)

			// 如果未达到最大重试次数，加入重试队列
			if task.Retry < p.MaxRetry {
				task.Retry++
				select {
				case p.RetryQueue <- task:
					log.Printf("[Worker %d] Task added to retry queue (attempt %d/%d)", id, task.Retry, p.MaxRetry)
				default:
					log.Printf("[Worker %d] Retry queue full, task dropped: %+v", id, task)
					p.logFailedTask(task, err)
				}
			} else {
				log.Printf("[Worker %d] Task exceeded max retries, dropped: %+v", id, task)
				p.logFailedTask(task, err)
			}
		}
	}
}

func (p *WorkerPool) retryWorker() {
	for task := range p.RetryQueue {
		// 延迟重试，避免立即重试
		time.Sleep(time.Duration(task.Retry) * time.Second)

		// 重新加入主队列
		select {
		case p.TaskQueue <- task:
			log.Printf("[RetryWorker] Task re-queued (attempt %d/%d)", task.Retry, p.MaxRetry)
		default:
			log.Printf("[RetryWorker] Main queue full, task dropped: %+v", task)
			p.logFailedTask(task, nil)
		}
	}
}

func (p *WorkerPool) logFailedTask(task NotifyTask, err error) {
	log.Printf("[DeadLetter] Task failed permanently: MessageID=%s, AccountID=%s, Error=%v",
		task.MessageID, task.AccountID, err)
}

func (p *WorkerPool) AddTask(task NotifyTask) {
	select {
	case p.TaskQueue <- task:
		// 任务入队成功
	default:
		log.Printf("Worker pool queue full, dropping task: %+v", task)
		p.logFailedTask(task, nil)
	}
}
