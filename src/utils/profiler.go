package utils

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/pkg/errors"

	"github.com/blackyblack/poker-contracts-sub001/src/utils/log"
)

// Profile is a running CPU and/or heap profile.
type Profile struct {
	cpu *os.File
	mem *os.File
}

// StartProfile starts CPU profiling into cpuFile and arranges a heap profile into memFile,
// either may be empty.
func StartProfile(cpuFile, memFile string) (p *Profile, err error) {
	p = &Profile{}
	if cpuFile != "" {
		if p.cpu, err = os.Create(cpuFile); err != nil {
			err = errors.Wrap(err, "create cpu profile failed")
			return
		}
		if err = pprof.StartCPUProfile(p.cpu); err != nil {
			_ = p.cpu.Close()
			err = errors.Wrap(err, "start cpu profile failed")
			return
		}
		log.WithField("file", cpuFile).Info("writing cpu profile")
	}
	if memFile != "" {
		if p.mem, err = os.Create(memFile); err != nil {
			p.Stop()
			err = errors.Wrap(err, "create memory profile failed")
			return
		}
		runtime.MemProfileRate = 4096
		log.WithField("file", memFile).Info("writing memory profile")
	}
	return
}

// Stop flushes and closes the profiles. It is safe to call more than once.
func (p *Profile) Stop() {
	if p.cpu != nil {
		pprof.StopCPUProfile()
		_ = p.cpu.Close()
		p.cpu = nil
		log.Info("cpu profile stopped")
	}
	if p.mem != nil {
		if err := pprof.WriteHeapProfile(p.mem); err != nil {
			log.WithError(err).Error("write memory profile failed")
		}
		_ = p.mem.Close()
		p.mem = nil
		log.Info("memory profile stopped")
	}
}
