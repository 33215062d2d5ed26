package dirsum

// Algorithm names
const (
	AlgorithmMD5    = "md5"
	AlgorithmSHA1   = "sha1"
	AlgorithmSHA256 = "sha256"
	AlgorithmSHA512 = "sha512"
	AlgorithmXXH3   = "xxh3"
)

// Hash size constants
const (
	HashSizeMD5    = 16 // MD5 hash size in bytes
	HashSizeSHA1   = 20 // SHA-1 hash size in bytes
	HashSizeSHA256 = 32 // SHA-256 hash size in bytes
	HashSizeSHA512 = 64 // SHA-512 hash size in bytes
	HashSizeXXH3   = 8  // XXH3-64 hash size in bytes
)

// Defaults used when no config file or override supplies a value
const (
	DefaultAlgorithm  = AlgorithmMD5
	DefaultHashBuffer = "2M"
	DefaultConfigDir  = "dirsum"
	DefaultConfigFile = "config"
)

// Debug flag names
const (
	DebugWalk   = "walk"
	DebugHash   = "hash"
	DebugConfig = "config"
)

// fallbackIOVMax bounds the iovec count per writev call (UIO_MAXIOV on Linux)
const fallbackIOVMax = 1024
