// Command gohmmdemo is the external demonstration driver: it allocates a
// random number of same-sized blocks, frees a strided range of them, and
// logs the break address at each stage. It is a Go reimplementation of
// the original random alloc/free driver, with structured logging in
// place of raw printf.
package main

import (
	"math/rand"
	"os"
	"unsafe"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	hmm "github.com/shadibahaa/gohmm"
)

// maxAllocs bounds every randomized parameter, matching the source
// driver's MAX_ALLOCS.
const maxAllocs = 10000

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	a, err := hmm.New(0)
	if err != nil {
		log.Fatal().Err(err).Msg("reserve arena")
	}

	numAllocs := rand.Intn(maxAllocs) + 1
	blockSize := rand.Intn(maxAllocs) + 1
	freeStep := rand.Intn(maxAllocs) + 1
	freeMin := rand.Intn(maxAllocs) + 1
	freeMax := numAllocs
	if m := rand.Intn(maxAllocs) + 1; m < freeMax {
		freeMax = m
	}
	if freeMax > numAllocs {
		log.Warn().Int("free_max", freeMax).Int("num_allocs", numAllocs).Msg("free-max > num-allocs")
	}

	log.Info().Uint64("break", uint64(a.BreakAddr())).Msg("initial program break")

	log.Info().Int("count", numAllocs).Int("size", blockSize).Msg("allocating blocks")
	ptrs := make([]unsafe.Pointer, numAllocs)
	for i := 0; i < numAllocs; i++ {
		ptrs[i] = a.Malloc(uintptr(blockSize))
		if ptrs[i] == nil {
			log.Warn().Int("index", i).Msg("malloc failed")
		}
	}

	log.Info().Uint64("break", uint64(a.BreakAddr())).Msg("program break after allocation")

	log.Info().Int("from", freeMin).Int("to", freeMax).Int("step", freeStep).Msg("freeing blocks")
	for j := freeMin - 1; j < freeMax; j += freeStep {
		a.Free(ptrs[j])
	}

	log.Info().Uint64("break", uint64(a.BreakAddr())).Msg("program break after free")
}
