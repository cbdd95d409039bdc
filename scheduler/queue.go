package scheduler

import (
	"fmt"

	conq "github.com/enriquebris/goconcurrentqueue"
	"go.uber.org/zap"

	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/core"
)

type queueChan chan *queuedRun

type fifo interface {
	Enqueue(*queuedRun) error
	Dequeue() (*queuedRun, error)
	DequeueOrWaitForNextElement() (*queuedRun, error)
	Get(index int) (*queuedRun, error)
	GetLen() int
	Remove(index int) error
}

type conqFIFO struct {
	conq.FIFO
}

func newConqFIFO() *conqFIFO {
	return &conqFIFO{
		FIFO: *conq.NewFIFO(),
	}
}

func (c *conqFIFO) Enqueue(qr *queuedRun) error {
	return c.FIFO.Enqueue(qr)
}

func (c *conqFIFO) Dequeue() (*queuedRun, error) {
	tmp, err := c.FIFO.Dequeue()
	if err != nil {
		return nil, err
	}
	return tmp.(*queuedRun), nil
}

func (c *conqFIFO) DequeueOrWaitForNextElement() (*queuedRun, error) {
	tmp, err := c.FIFO.DequeueOrWaitForNextElement()
	if err != nil {
		return nil, err
	}
	return tmp.(*queuedRun), nil
}

func (c *conqFIFO) Get(index int) (*queuedRun, error) {
	tmp, err := c.FIFO.Get(index)
	if err != nil {
		return nil, err
	}
	return tmp.(*queuedRun), nil
}

func (c *conqFIFO) GetLen() int {
	return c.FIFO.GetLen()
}

func (c *conqFIFO) Remove(index int) error {
	return c.FIFO.Remove(index)
}

// RunQueue is a bounded FIFO of runs waiting for the processing loop.
// Submissions past maxSize are dropped: the run is marked FAILED and its
// waiter is released so the handling goroutine never stalls.
type RunQueue struct {
	fifo            fifo
	maxSize         int
	refillThreshold int
	queueChan       queueChan
	cancelChan      chan struct{}
}

func (n *RunQueue) Setup(conf *core.Conf) error {
	n.refillThreshold = conf.QueueRefillThreshold
	n.maxSize = conf.QueueMaxSize
	n.fifo = newConqFIFO()
	n.queueChan = make(queueChan)
	n.cancelChan = make(chan struct{})
	go func() {
		defer close(n.cancelChan)
		for {
			var qr *queuedRun
			select {
			case <-n.cancelChan:
				return
			case qr = <-n.queueChan:
			}
			jd := qr.job.JobData()
			if n.maxSize <= n.fifo.GetLen() {
				zap.L().Info(fmt.Sprintf("Failed to put %s. Run queue is full.", jd.ID))
				core.SetFailureWithErrorToJobData(jd, fmt.Errorf("run queue is full"))
				qr.finished.Done()
				continue
			}
			zap.L().Debug(fmt.Sprintf("Putting %s to run queue", jd.ID))
			err := n.fifo.Enqueue(qr)
			if err != nil {
				zap.L().Error(
					fmt.Sprintf("Failed to put %s to run queue. Reason:%s", jd.ID, err))
				core.SetFailureWithErrorToJobData(jd, err)
				qr.finished.Done()
			}
		}
	}()
	return nil
}

func (n *RunQueue) TearDown() {
	n.cancelChan <- struct{}{}
}

// wait until the next element gets enqueued
func (n *RunQueue) Dequeue(wait bool) (qr *queuedRun, err error) {
	qr = nil
	err = nil
	if wait {
		qr, err = n.fifo.DequeueOrWaitForNextElement()
	} else {
		qr, err = n.fifo.Dequeue()
	}
	if err != nil {
		zap.L().Debug("no run in queue.", zap.Error(err))
		return
	}
	zap.L().Debug(fmt.Sprintf("Dequeued run:%s", qr.job.JobData().ID))
	return
}

func (n *RunQueue) Delete(jobID string) error {
	zap.L().Debug(fmt.Sprintf("deleting %s from run queue", jobID))
	var idx int
	var err error

	idx, err = n.getIdx(jobID)
	if err != nil {
		zap.L().Info(fmt.Sprintf("Failed to Delete %s. Reason:%s", jobID, err))
		return err
	}
	err = n.fifo.Remove(idx)
	if err != nil {
		zap.L().Error(fmt.Sprintf("Failed to remove idx:%d. Reason:%s", idx, err))
		return err
	}
	return nil
}

func (n *RunQueue) IsOverRefillThreshold() bool {
	return n.refillThreshold <= n.fifo.GetLen()
}

func (n *RunQueue) GetCurrentSize() int {
	return n.fifo.GetLen()
}

func (n *RunQueue) getIdx(jobID string) (int, error) {
	for i := 0; i < n.fifo.GetLen(); i++ {
		qr, err := n.fifo.Get(i)
		if err == nil {
			if qr.job.JobData().ID == jobID {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("No entry")
}
