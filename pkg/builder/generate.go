package builder

import (
	"runtime"
	"sync"

	"github.com/galaxysailing/embree/pkg/core"
)

// PrimRefSource is a geometry able to emit static primitive references
// for a contiguous range of its primitives
type PrimRefSource interface {
	NumPrimitives() int
	CreatePrimRefArray(prims []PrimRef, begin, end, k int) PrimInfo
}

// PrimRefMBSource is a geometry able to emit motion primitive references
type PrimRefMBSource interface {
	NumPrimitives() int
	CreatePrimRefMBArray(prims []PrimRefMB, t0t1 core.BBox1, begin, end, k int) PrimInfoMB
}

// rangeTask is one contiguous primitive range handed to a worker
type rangeTask struct {
	begin, end int
}

func splitRanges(n, grain int) []rangeTask {
	if grain < 1 {
		grain = 1
	}
	tasks := make([]rangeTask, 0, (n+grain-1)/grain)
	for begin := 0; begin < n; begin += grain {
		end := begin + grain
		if end > n {
			end = n
		}
		tasks = append(tasks, rangeTask{begin: begin, end: end})
	}
	return tasks
}

// CreatePrimRefArrayParallel generates primitive references for every
// primitive of src into prims, skipping primitives the source rejects.
// Ranges are processed concurrently, each writing only its own disjoint
// slice of prims; afterwards the survivors are compacted to the front in
// range order and the per-range aggregates merged left to right, so the
// result equals a serial left-to-right generation. prims must hold at
// least src.NumPrimitives() entries. grain is the range size per task;
// values below 1 select a size based on the worker count.
func CreatePrimRefArrayParallel(src PrimRefSource, prims []PrimRef, grain int) PrimInfo {
	n := src.NumPrimitives()
	if grain < 1 {
		grain = defaultGrain(n)
	}
	tasks := splitRanges(n, grain)

	infos := make([]PrimInfo, len(tasks))
	var wg sync.WaitGroup
	for ti, task := range tasks {
		wg.Add(1)
		go func(ti int, task rangeTask) {
			defer wg.Done()
			infos[ti] = src.CreatePrimRefArray(prims, task.begin, task.end, task.begin)
		}(ti, task)
	}
	wg.Wait()

	pinfo := EmptyPrimInfo()
	write := 0
	for ti, task := range tasks {
		num := infos[ti].Num
		if write != task.begin {
			copy(prims[write:write+num], prims[task.begin:task.begin+num])
		}
		write += num
		pinfo.Merge(infos[ti])
	}
	return pinfo
}

// CreatePrimRefMBArrayParallel is the motion-blur counterpart of
// CreatePrimRefArrayParallel, filtering on validity over the t0t1 range
func CreatePrimRefMBArrayParallel(src PrimRefMBSource, prims []PrimRefMB, t0t1 core.BBox1, grain int) PrimInfoMB {
	n := src.NumPrimitives()
	if grain < 1 {
		grain = defaultGrain(n)
	}
	tasks := splitRanges(n, grain)

	infos := make([]PrimInfoMB, len(tasks))
	var wg sync.WaitGroup
	for ti, task := range tasks {
		wg.Add(1)
		go func(ti int, task rangeTask) {
			defer wg.Done()
			infos[ti] = src.CreatePrimRefMBArray(prims, t0t1, task.begin, task.end, task.begin)
		}(ti, task)
	}
	wg.Wait()

	pinfo := EmptyPrimInfoMB()
	write := 0
	for ti, task := range tasks {
		num := infos[ti].Num
		if write != task.begin {
			copy(prims[write:write+num], prims[task.begin:task.begin+num])
		}
		write += num
		pinfo.Merge(infos[ti])
	}
	return pinfo
}

func defaultGrain(n int) int {
	grain := n / (4 * runtime.GOMAXPROCS(0))
	if grain < 64 {
		grain = 64
	}
	return grain
}
