package internal

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/blackyblack/poker-contracts-sub001/src/conf"
	"github.com/blackyblack/poker-contracts-sub001/src/metric"
	"github.com/blackyblack/poker-contracts-sub001/src/session"
	"github.com/blackyblack/poker-contracts-sub001/src/utils/timer"
	"github.com/blackyblack/poker-contracts-sub001/src/worker"
)

var (
	batchMode   bool
	strictKinds bool
	dumpMetrics bool
)

// CmdVerify is hup verify command entity.
var CmdVerify = newCommand("hup verify [common params] [-batch] [-strict] [-metrics] transcript",
	"verify a transcript of signed channel messages", `
Verify replays a JSON array of signed messages, as printed by "hup sign", in order.
Every message must extend the hash chain of its hand and be signed by its sender
(actions) or by "signer" (card commits). A rejected message does not advance its hand.
With -batch signatures are checked in parallel on the worker pool first, then the hash
chain of every hand is replayed over the messages that passed.
With -strict actions of kinds outside SMALL_BLIND..BET_RAISE are rejected.
The exit status is 1 when any message is rejected.
e.g.
    hup verify -testnet transcript.json
    hup verify -testnet -batch -strict -metrics transcript.json
`, "Verify params")

func init() {
	CmdVerify.Run = runVerify

	addCommonFlags(CmdVerify)
	addConfigFlag(CmdVerify)

	CmdVerify.Flag.BoolVar(&batchMode, "batch", false, "Check signatures on the worker pool before the hash chains")
	CmdVerify.Flag.BoolVar(&strictKinds, "strict", false, "Reject actions of unknown kinds")
	CmdVerify.Flag.BoolVar(&dumpMetrics, "metrics", false, "Print verifier metrics to stderr when done")
}

func runVerify(cmd *Command, args []string) {
	commonFlagsInit(cmd)
	configInit()

	tm := timer.NewTimer()
	if len(args) != 1 {
		cmd.Usage()
	}
	data, err := readInput(args[0])
	if err != nil {
		fatal(err, "read transcript failed")
	}
	msgs, err := parseTranscript(data)
	if err != nil {
		fatal(err, "parse transcript failed")
	}
	if len(msgs) > conf.MaxBatchJobs {
		ConsoleLog.WithFields(logrus.Fields{
			"messages": len(msgs),
			"max":      conf.MaxBatchJobs,
		}).Error("transcript too long")
		SetExitStatus(1)
		return
	}
	tm.Stage("parse")
	dump("transcript", msgs)
	_, sep := domainSeparator()

	var recorder metric.Recorder
	if dumpMetrics {
		registry, vm, err := metric.StartMetricCollector()
		if err != nil {
			fatal(err, "start metric collector failed")
		}
		recorder = vm
		defer func() {
			if err := metric.Dump(registry, os.Stderr); err != nil {
				ConsoleLog.WithError(err).Error("dump metrics failed")
			}
		}()
	}

	var verdicts []verdict
	if batchMode {
		bv := worker.NewBatchVerifier(conf.GConf.Worker.Count, conf.GConf.Worker.QueueLength, recorder)
		defer bv.Close()
		if verdicts, err = batchTranscript(bv, sep, msgs, strictKinds); err != nil {
			fatal(err, "batch verify failed")
		}
	} else {
		verdicts = replayTranscript(session.NewTracker(sep, recorder), msgs, strictKinds)
	}
	tm.Stage("verify")
	ConsoleLog.WithFields(tm.ToLogFields()).WithField("messages", len(msgs)).Debug("transcript verified")

	for _, v := range verdicts {
		if v.err != nil {
			ConsoleLog.WithFields(logrus.Fields{
				"index": v.Index,
				"kind":  v.Kind,
				"seq":   v.Seq,
			}).WithError(v.err).Warning("message rejected")
		}
	}
	if err = printJSON(os.Stdout, verdicts); err != nil {
		fatal(err, "print verdicts failed")
	}
	if n := countRejected(verdicts); n > 0 {
		ConsoleLog.Errorf("%d of %d messages rejected", n, len(verdicts))
		SetExitStatus(1)
	}
}
