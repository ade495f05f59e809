package config

type MongoConfig struct {
	URI      string
	Database string
}
