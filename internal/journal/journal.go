package journal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/qiniu/x/xlog"

	"hr_dashboard/configs"
	"hr_dashboard/shared/queue"
)

const writeTimeout = 5 * time.Second

// Journal принимает записи без блокировки и пишет их в Sink из фоновой горутины.
// Ошибки журнала никогда не доходят до оператора
type Journal struct {
	queue     *queue.FIFOQueue[Entry]
	sink      Sink
	batchSize int
	xl        *xlog.Logger
	now       func() time.Time

	startOnce sync.Once
	done      chan struct{}
}

func New(sink Sink, conf configs.JournalConfig) (*Journal, error) {
	if sink == nil {
		return nil, errors.New("journal sink is nil")
	}
	if conf.QueueSize <= 0 || conf.BatchSize <= 0 {
		return nil, errors.New("journal queue size and batch size must be positive")
	}

	return &Journal{
		queue:     queue.NewFIFOQueue[Entry](conf.QueueSize),
		sink:      sink,
		batchSize: conf.BatchSize,
		xl:        xlog.New("journal"),
		now:       time.Now,
		done:      make(chan struct{}),
	}, nil
}

// Record ставит запись в очередь. Переполненная очередь теряет запись с пометкой в логе
func (j *Journal) Record(entry Entry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = j.now()
	}
	if !j.queue.Enqueue(entry) {
		j.xl.Warnf("journal queue is full or closed, entry dropped: %s by %s (vacancy=%s candidate=%d)",
			entry.Action, entry.Operator, entry.VacancyID, entry.CandidateID)
	}
}

// Start запускает фоновую запись, повторный вызов ничего не делает
func (j *Journal) Start(ctx context.Context) {
	j.startOnce.Do(func() {
		go j.run(ctx)
	})
}

// Close закрывает очередь и ждёт, пока писатель сбросит остаток
func (j *Journal) Close(ctx context.Context) error {
	j.queue.Close()
	j.Start(ctx) // если не стартовали, остаток всё равно надо дописать

	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run ждёт первую запись, добирает без ожидания остальное до batchSize и пишет пачкой.
// Отмена ctx не теряет записи: очередь дочитывается после Close
func (j *Journal) run(ctx context.Context) {
	defer close(j.done)

	waitCtx := ctx
	for {
		first, ok := j.queue.DequeueWait(waitCtx)
		if !ok {
			if waitCtx.Err() != nil {
				// ctx отменён, дальше ждём закрытия очереди
				waitCtx = context.Background()
				continue
			}
			return
		}

		batch := []Entry{first}
		for len(batch) < j.batchSize {
			next, ok := j.queue.Dequeue()
			if !ok {
				break
			}
			batch = append(batch, next)
		}

		j.flush(batch)
	}
}

func (j *Journal) flush(batch []Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := j.sink.Write(ctx, batch); err != nil {
		j.xl.Errorf("failed to write %d journal entries: %v", len(batch), err)
		for _, e := range batch {
			j.xl.Infof("lost journal entry: %s by %s (vacancy=%s candidate=%d success=%v)",
				e.Action, e.Operator, e.VacancyID, e.CandidateID, e.Success)
		}
	}
}

// Pending - сколько записей ждут записи
func (j *Journal) Pending() int {
	return j.queue.Size()
}
