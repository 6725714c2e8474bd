package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"wedding-gallery/infrastructure/recognition"
	"wedding-gallery/infrastructure/redis"
	"wedding-gallery/pkg/logger"
)

const (
	triggerQueueSize = 256
	triggerWorkers   = 2
	dedupeTTL        = 30 * time.Second
	triggerTimeout   = 10 * time.Second
)

type triggerKind int

const (
	triggerProcessPhoto triggerKind = iota
	triggerReprocessWedding
)

type trigger struct {
	kind      triggerKind
	photoID   uuid.UUID
	weddingID uuid.UUID
	userID    uuid.UUID
}

// TriggerDispatcher delivers fire-and-forget nudges to the recognition
// service off the request path. A dropped or failed trigger is never an
// error for the caller; the queue table remains the source of truth and
// the sweeper picks up anything a lost trigger delayed.
type TriggerDispatcher struct {
	client recognition.Client
	redis  *redis.RedisClient

	triggers chan trigger

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning bool
	mu        sync.Mutex
}

func NewTriggerDispatcher(client recognition.Client, redisClient *redis.RedisClient) *TriggerDispatcher {
	return &TriggerDispatcher{
		client:   client,
		redis:    redisClient,
		triggers: make(chan trigger, triggerQueueSize),
	}
}

func (d *TriggerDispatcher) Start() {
	d.mu.Lock()
	if d.isRunning {
		d.mu.Unlock()
		return
	}
	d.isRunning = true
	d.ctx, d.cancel = context.WithCancel(context.Background())
	d.mu.Unlock()

	for i := 0; i < triggerWorkers; i++ {
		d.wg.Add(1)
		go d.run()
	}

	logger.Queue("dispatcher_start", "Trigger dispatcher started", map[string]interface{}{
		"workers": triggerWorkers,
	})
}

func (d *TriggerDispatcher) Stop() {
	d.mu.Lock()
	if !d.isRunning {
		d.mu.Unlock()
		return
	}
	d.isRunning = false
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
	logger.Queue("dispatcher_stop", "Trigger dispatcher stopped", nil)
}

func (d *TriggerDispatcher) IsRunning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.isRunning
}

// NotifyProcessPhoto enqueues a process trigger for one photo. Never blocks:
// when the buffer is full the trigger is dropped and only logged.
func (d *TriggerDispatcher) NotifyProcessPhoto(photoID uuid.UUID) {
	d.enqueue(trigger{kind: triggerProcessPhoto, photoID: photoID})
}

// NotifyReprocessWedding enqueues a reprocess trigger after a guest's face
// enrollment changed.
func (d *TriggerDispatcher) NotifyReprocessWedding(weddingID, userID uuid.UUID) {
	d.enqueue(trigger{kind: triggerReprocessWedding, weddingID: weddingID, userID: userID})
}

func (d *TriggerDispatcher) enqueue(t trigger) {
	d.mu.Lock()
	running := d.isRunning
	d.mu.Unlock()
	if !running {
		return
	}

	select {
	case d.triggers <- t:
	default:
		logger.QueueError("trigger_drop", "Trigger buffer full, dropping", nil, map[string]interface{}{
			"kind": int(t.kind),
		})
	}
}

func (d *TriggerDispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case <-d.ctx.Done():
			return
		case t := <-d.triggers:
			d.dispatch(t)
		}
	}
}

func (d *TriggerDispatcher) dispatch(t trigger) {
	ctx, cancel := context.WithTimeout(d.ctx, triggerTimeout)
	defer cancel()

	if !d.claim(ctx, t) {
		return
	}

	var err error
	switch t.kind {
	case triggerProcessPhoto:
		err = d.client.TriggerProcessPhoto(ctx, t.photoID)
	case triggerReprocessWedding:
		err = d.client.TriggerReprocessWedding(ctx, t.weddingID, t.userID)
	}

	if err != nil {
		logger.QueueError("trigger_failed", "Recognition trigger failed", err, map[string]interface{}{
			"kind":       int(t.kind),
			"photo_id":   t.photoID.String(),
			"wedding_id": t.weddingID.String(),
		})
	}
}

// claim dedupes identical triggers within a short window. Redis being down
// is not a reason to withhold the trigger; dispatch anyway.
func (d *TriggerDispatcher) claim(ctx context.Context, t trigger) bool {
	if d.redis == nil {
		return true
	}

	var key string
	switch t.kind {
	case triggerProcessPhoto:
		key = fmt.Sprintf("trigger:photo:%s", t.photoID)
	case triggerReprocessWedding:
		key = fmt.Sprintf("trigger:reprocess:%s:%s", t.weddingID, t.userID)
	}

	won, err := d.redis.SetNX(ctx, key, 1, dedupeTTL)
	if err != nil {
		return true
	}
	return won
}
