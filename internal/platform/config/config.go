package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string
	HTTPPort     string
	PostgresDSN  string
	RedisURL     string
	KafkaBrokers []string

	ChainRPCURL     string
	ChainID         int64
	EscrowSignerKey string
	OwnerAddress    string

	Factory TrackConfig
	Vault   TrackConfig

	DiscordBotToken   string
	DiscordChannelID  string
	AnnouncerDisabled bool

	SweepInterval  time.Duration
	SweepBatchSize int
	RelayBatchSize int
}

// TrackConfig carries the per-track admission policy knobs. Amounts are in
// base units of the track's deposit asset.
type TrackConfig struct {
	EscrowAccount         string
	MinDeposit            uint64
	QuorumFloor           uint64
	SubmissionFee         uint64
	InitialVotingPeriod   time.Duration
	ChallengeWindowPeriod time.Duration
	ChallengeVotingPeriod time.Duration
	LameDuckPeriod        time.Duration
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "solon"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	return Config{
		ServiceName:  service,
		HTTPPort:     port,
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		RedisURL:     os.Getenv("REDIS_URL"),
		KafkaBrokers: brokers,

		ChainRPCURL:     os.Getenv("CHAIN_RPC_URL"),
		ChainID:         envInt64("CHAIN_ID", 1),
		EscrowSignerKey: os.Getenv("ESCROW_SIGNER_KEY"),
		OwnerAddress:    os.Getenv("OWNER_ADDRESS"),

		Factory: loadTrack("FACTORY"),
		Vault:   loadTrack("VAULT"),

		DiscordBotToken:   os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordChannelID:  os.Getenv("DISCORD_CHANNEL_ID"),
		AnnouncerDisabled: envBool("ANNOUNCER_DISABLED", false),

		SweepInterval:  envDuration("SWEEP_INTERVAL", 2*time.Second),
		SweepBatchSize: envInt("SWEEP_BATCH_SIZE", 50),
		RelayBatchSize: envInt("RELAY_BATCH_SIZE", 100),
	}, nil
}

func loadTrack(prefix string) TrackConfig {
	return TrackConfig{
		EscrowAccount:         os.Getenv(prefix + "_ESCROW_ACCOUNT"),
		MinDeposit:            envUint64(prefix+"_MIN_DEPOSIT", 100),
		QuorumFloor:           envUint64(prefix+"_QUORUM_FLOOR", 1000),
		SubmissionFee:         envUint64(prefix+"_SUBMISSION_FEE", 50),
		InitialVotingPeriod:   envDuration(prefix+"_INITIAL_VOTING_PERIOD", 7*24*time.Hour),
		ChallengeWindowPeriod: envDuration(prefix+"_CHALLENGE_WINDOW_PERIOD", 3*24*time.Hour),
		ChallengeVotingPeriod: envDuration(prefix+"_CHALLENGE_VOTING_PERIOD", 5*24*time.Hour),
		LameDuckPeriod:        envDuration(prefix+"_LAME_DUCK_PERIOD", 24*time.Hour),
	}
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envInt64(name string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

func envUint64(name string, fallback uint64) uint64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}
