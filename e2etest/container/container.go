//go:build e2e

package container

import (
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"

	"github.com/nftstake/weight-indexer/testutil"
)

const (
	mongoContainerName    = "weight-indexer-e2e-mongo"
	rabbitMQContainerName = "weight-indexer-e2e-rabbitmq"

	Username = "user"
	Password = "password"
)

// Manager is a wrapper around all Docker instances, and the Docker API.
// It provides utilities to run and interact with all Docker containers used within e2e testing.
type Manager struct {
	cfg       ImageConfig
	pool      *dockertest.Pool
	resources map[string]*dockertest.Resource
}

func NewManager(t *testing.T) *Manager {
	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	pool.MaxWait = 2 * time.Minute

	return &Manager{
		cfg:       NewImageConfig(),
		pool:      pool,
		resources: make(map[string]*dockertest.Resource),
	}
}

// RunMongoResource starts mongo and returns the mapped host port.
func (m *Manager) RunMongoResource(t *testing.T) string {
	resource := m.run(t, mongoContainerName, &dockertest.RunOptions{
		Repository: m.cfg.MongoRepository,
		Tag:        m.cfg.MongoVersion,
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=" + Username,
			"MONGO_INITDB_ROOT_PASSWORD=" + Password,
		},
	})
	return resource.GetPort("27017/tcp")
}

// RunRabbitMQResource starts rabbitmq and returns the mapped host port.
func (m *Manager) RunRabbitMQResource(t *testing.T) string {
	resource := m.run(t, rabbitMQContainerName, &dockertest.RunOptions{
		Repository: m.cfg.RabbitMQRepository,
		Tag:        m.cfg.RabbitMQVersion,
		Env: []string{
			"RABBITMQ_DEFAULT_USER=" + Username,
			"RABBITMQ_DEFAULT_PASS=" + Password,
		},
	})
	return resource.GetPort("5672/tcp")
}

// Retry waits until op succeeds or the pool max wait is reached.
func (m *Manager) Retry(op func() error) error {
	return m.pool.Retry(op)
}

func (m *Manager) run(t *testing.T, name string, opts *dockertest.RunOptions) *dockertest.Resource {
	opts.Name = testutil.RandomID(name)

	resource, err := m.pool.RunWithOptions(opts, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	require.NoError(t, err)
	m.resources[name] = resource
	return resource
}

// ClearResources removes all outstanding Docker resources created by the Manager.
func (m *Manager) ClearResources() error {
	for name, resource := range m.resources {
		if err := m.pool.Purge(resource); err != nil {
			return fmt.Errorf("failed to purge %s: %w", name, err)
		}
	}
	return nil
}
