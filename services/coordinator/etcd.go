// Package coordinator implements the coordination store the downstream
// sort cluster reads its configuration from, backed by etcd. Layout:
// one serialized descriptor per (cluster, sink) key, plus one member
// key per sink under the cluster's member set.
package coordinator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"
)

type EtcdStore struct {
	log    logger.Logger
	client *clientv3.Client

	config struct {
		root             string
		operationTimeout time.Duration
	}
}

// New dials etcd with the configured endpoints and returns the store.
func New(conf *config.Config, log logger.Logger) (*EtcdStore, error) {
	hosts := strings.Split(conf.GetString("Coordinator.etcdHosts", "127.0.0.1:2379"), ",")
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   hosts,
		DialTimeout: conf.GetDuration("Coordinator.connTimeout", 3, time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to etcd %v: %w", hosts, err)
	}
	return NewWithClient(conf, log, client), nil
}

// NewWithClient wraps an existing etcd client, used by tests.
func NewWithClient(conf *config.Config, log logger.Logger, client *clientv3.Client) *EtcdStore {
	s := &EtcdStore{
		log:    log.Child("coordinator"),
		client: client,
	}
	s.config.root = conf.GetString("Coordinator.root", "/flowsync")
	s.config.operationTimeout = conf.GetDuration("Coordinator.operationTimeout", 15, time.Second)
	return s
}

// UpsertDataFlow writes the serialized descriptor under the
// (cluster, sink) key, overwriting any previous value.
func (s *EtcdStore) UpsertDataFlow(ctx context.Context, clusterName string, sinkID int64, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.operationTimeout)
	defer cancel()

	key := dataFlowKey(s.config.root, clusterName, sinkID)
	if _, err := s.client.Put(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("upserting data flow at %s: %w", key, err)
	}
	return nil
}

// RegisterDataFlow adds the sink to the cluster's member set. The
// per-sink member key makes the add idempotent.
func (s *EtcdStore) RegisterDataFlow(ctx context.Context, clusterName string, sinkID int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.operationTimeout)
	defer cancel()

	key := memberKey(s.config.root, clusterName, sinkID)
	if _, err := s.client.Put(ctx, key, strconv.FormatInt(sinkID, 10)); err != nil {
		return fmt.Errorf("registering data flow at %s: %w", key, err)
	}
	return nil
}

func (s *EtcdStore) Close() error {
	return s.client.Close()
}

func dataFlowKey(root, clusterName string, sinkID int64) string {
	return root + "/clusters/" + clusterName + "/dataflows/" + strconv.FormatInt(sinkID, 10)
}

func memberKey(root, clusterName string, sinkID int64) string {
	return root + "/clusters/" + clusterName + "/members/" + strconv.FormatInt(sinkID, 10)
}
