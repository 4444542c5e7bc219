// internal/services/poller.go
package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RefreshPoller is an explicit subscription driving periodic product
// refreshes. The controller owns its lifecycle: started once a session
// exists, stopped on Close. It is independent of any view framework.
type RefreshPoller struct {
	spec string
	task func()

	mtx     sync.Mutex
	cron    *cron.Cron
	running bool
}

func NewRefreshPoller(interval time.Duration, task func()) *RefreshPoller {
	return &RefreshPoller{
		spec: fmt.Sprintf("@every %s", interval),
		task: task,
	}
}

// Start begins polling. Calling Start on a running poller is a no-op.
func (p *RefreshPoller) Start() {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	if p.running {
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(p.spec, p.task); err != nil {
		logrus.WithError(err).WithField("spec", p.spec).Error("failed to schedule product refresh")
		return
	}
	c.Start()

	p.cron = c
	p.running = true
	logrus.WithField("spec", p.spec).Info("product refresh poller started")
}

// Stop halts polling. A tick already in flight finishes on its own.
func (p *RefreshPoller) Stop() {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	if !p.running {
		return
	}

	p.cron.Stop()
	p.cron = nil
	p.running = false
	logrus.Info("product refresh poller stopped")
}

func (p *RefreshPoller) Running() bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.running
}
