package service

import (
	"errors"

	"course_market/internal/pkg/push"
	"course_market/internal/pkg/worker"
)

// PushProcessor 把站内信任务交给推送服务
type PushProcessor struct{}

func NewPushProcessor() *PushProcessor {
	return &PushProcessor{}
}

func (p *PushProcessor) Process(task worker.NotifyTask) error {
	if push.GlobalPushService == nil {
		return errors.New("push service not configured")
	}
	return push.GlobalPushService.PushToAccount(task.AccountID, task.Title, task.Body, map[string]string{
		"messageId": task.MessageID,
	})
}

var _ worker.TaskProcessor = (*PushProcessor)(nil)
