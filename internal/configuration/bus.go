package configuration

import "time"

type BusConfig struct {
	Broker   string `json:"broker"`
	ClientId string `json:"clientId"`
	Qos      byte   `json:"qos"`
	// Max time to wait for the broker to acknowledge a connect, publish or subscribe
	Timeout time.Duration `json:"timeout"`
}
