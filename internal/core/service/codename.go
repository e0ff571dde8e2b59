package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var codeNameAdjectives = []string{
	"amber", "bold", "brisk", "calm", "clever", "crimson", "daring", "eager",
	"fierce", "gilded", "hidden", "iron", "jade", "keen", "lunar", "mellow",
	"noble", "onyx", "prime", "quick", "rapid", "silent", "solar", "swift",
	"vivid", "wild",
}

var codeNameNouns = []string{
	"badger", "cobra", "condor", "falcon", "gecko", "heron", "jackal",
	"kestrel", "lynx", "marlin", "mantis", "otter", "panther", "puffin",
	"raven", "salmon", "serval", "shark", "sparrow", "tiger", "viper", "wolf",
}

// GenerateCodeName returns a display alias of the form adjective-noun-NNN.
// Collisions are acceptable: the codeName is a casual display value, not an
// identity.
func GenerateCodeName() string {
	return fmt.Sprintf("%s-%s-%03d",
		codeNameAdjectives[randIndex(len(codeNameAdjectives))],
		codeNameNouns[randIndex(len(codeNameNouns))],
		randIndex(1000),
	)
}

func randIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failing means the platform RNG is broken; there is no
		// reasonable fallback for a security-adjacent service.
		panic(fmt.Sprintf("codename: read random: %v", err))
	}
	return int(v.Int64())
}
