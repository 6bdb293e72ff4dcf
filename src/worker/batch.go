// Package worker verifies batches of independent signed messages on a goroutine pool.
package worker

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ivpusic/grpool"

	"github.com/blackyblack/poker-contracts-sub001/src/crypto/verifier"
	"github.com/blackyblack/poker-contracts-sub001/src/eip712"
	"github.com/blackyblack/poker-contracts-sub001/src/metric"
	"github.com/blackyblack/poker-contracts-sub001/src/types"
	"github.com/blackyblack/poker-contracts-sub001/src/utils/log"
)

const (
	// DefaultWorkerCount is the pool size used when none is configured.
	DefaultWorkerCount = 8
	// DefaultQueueLength is the job queue length used when none is configured.
	DefaultQueueLength = 16
)

// Job is one signature to check. Jobs carry everything they need so they can be verified in
// any order on any worker.
type Job struct {
	Kind      string
	Digest    common.Hash
	Signature []byte
	Expected  common.Address
}

// Result is the outcome of one Job.
type Result struct {
	Signer common.Address
	Err    error
}

// ActionJob builds the job checking that sig over a was made by its sender.
func ActionJob(domainSep common.Hash, a *types.Action, sig []byte) (job Job, err error) {
	var digest common.Hash
	if digest, err = eip712.ActionDigest(domainSep, a); err != nil {
		return
	}
	job = Job{Kind: metric.KindAction, Digest: digest, Signature: sig, Expected: a.Sender}
	return
}

// CardCommitJob builds the job checking that sig over c was made by signer.
func CardCommitJob(domainSep common.Hash, c *types.CardCommit, sig []byte, signer common.Address) (
	job Job, err error) {
	var digest common.Hash
	if digest, err = eip712.CardCommitDigest(domainSep, c); err != nil {
		return
	}
	job = Job{Kind: metric.KindCardCommit, Digest: digest, Signature: sig, Expected: signer}
	return
}

// BatchVerifier runs signature recovery and sender binding on a grpool.Pool.
type BatchVerifier struct {
	recorder metric.Recorder

	mu     sync.Mutex
	pool   *grpool.Pool
	closed bool
}

// NewBatchVerifier creates a verifier with workerCount goroutines and a job queue of
// queueLength, r may be nil.
func NewBatchVerifier(workerCount, queueLength int, r metric.Recorder) *BatchVerifier {
	if workerCount <= 0 {
		workerCount = DefaultWorkerCount
	}
	if queueLength <= 0 {
		queueLength = DefaultQueueLength
	}
	return &BatchVerifier{
		recorder: metric.Nop(r),
		pool:     grpool.NewPool(workerCount, queueLength),
	}
}

// Verify checks every job and returns the results in job order. Batches are run one at a time.
func (v *BatchVerifier) Verify(jobs []Job) (results []Result, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		err = ErrClosed
		return
	}

	results = make([]Result, len(jobs))
	v.recorder.Batch(len(jobs))
	v.pool.WaitCount(len(jobs))
	for i := range jobs {
		v.pool.JobQueue <- func() {
			defer v.pool.JobDone()
			job := &jobs[i]
			res := &results[i]
			if res.Signer, res.Err = verifier.Recover(job.Digest, job.Signature); res.Err == nil &&
				res.Signer != job.Expected {
				res.Err = &types.SenderMismatchError{Expected: job.Expected, Recovered: res.Signer}
			}
			kind := job.Kind
			if kind == "" {
				kind = metric.KindSignature
			}
			v.recorder.Message(kind, res.Err)
		}
	}
	v.pool.WaitAll()

	log.WithField("jobs", len(jobs)).Debug("verified batch")
	return
}

// Close stops the pool, it is safe to call more than once.
func (v *BatchVerifier) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	v.pool.Release()
}
