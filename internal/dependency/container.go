// Package dependency wires core skillhub services using go.uber.org/dig.
package dependency

import (
	"net/http"
	"sync"

	"go.uber.org/dig"

	"github.com/crystaldolphin/skillhub/internal/agent"
	"github.com/crystaldolphin/skillhub/internal/config"
	"github.com/crystaldolphin/skillhub/internal/memory"
	"github.com/crystaldolphin/skillhub/internal/schema"
	"github.com/crystaldolphin/skillhub/internal/skillhub"
	"github.com/crystaldolphin/skillhub/internal/skills"
	"github.com/crystaldolphin/skillhub/internal/tools"
)

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	cfg      *config.Config
	hub      *skillhub.Hub
	manager  *skills.Manager
	mem      *memory.FileStore
	registry AgentRegistry
	prompt   *agent.ContextBuilder
}

func (c *Container) Config() *config.Config                { return c.cfg }
func (c *Container) Hub() *skillhub.Hub                    { return c.hub }
func (c *Container) Client() *skillhub.Client              { return c.hub.Client() }
func (c *Container) SkillManager() *skills.Manager         { return c.manager }
func (c *Container) Memory() *memory.FileStore             { return c.mem }
func (c *Container) Tools() *tools.Registry                { return c.registry.Registry }
func (c *Container) ContextBuilder() *agent.ContextBuilder { return c.prompt }

// MemoryLock guards every MEMORY.md read-modify-write in the process.
type MemoryLock struct{ *sync.Mutex }

// AgentRegistry wraps the tool registry exposed to the agent.
type AgentRegistry struct{ *tools.Registry }

// Option adjusts how the container builds its services.
type Option func(*options)

type options struct {
	cloner     skillhub.Cloner
	skillOp    []skills.Option
	httpClient *http.Client
}

// WithCloner replaces the git cloner used for source installs.
func WithCloner(c skillhub.Cloner) Option {
	return func(o *options) { o.cloner = c }
}

// WithHTTPClient replaces the HTTP client used for registry and catalog calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithSkillOptions passes options through to the skill manager.
func WithSkillOptions(opts ...skills.Option) Option {
	return func(o *options) { o.skillOp = append(o.skillOp, opts...) }
}

// New builds and wires all core services from cfg.
func New(cfg *config.Config, opts ...Option) (*Container, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(func() options { return o }); err != nil {
		return nil, err
	}
	if err := d.Provide(newHTTPClient); err != nil {
		return nil, err
	}
	if err := d.Provide(newClient); err != nil {
		return nil, err
	}
	if err := d.Provide(newAcquirer); err != nil {
		return nil, err
	}
	if err := d.Provide(skillhub.NewHub); err != nil {
		return nil, err
	}
	if err := d.Provide(newSkillManager); err != nil {
		return nil, err
	}
	if err := d.Provide(newMemoryLock); err != nil {
		return nil, err
	}
	if err := d.Provide(newMemoryStore); err != nil {
		return nil, err
	}
	if err := d.Provide(newAgentRegistry); err != nil {
		return nil, err
	}
	if err := d.Provide(newContextBuilder); err != nil {
		return nil, err
	}

	var result *Container
	err := d.Invoke(func(
		hub *skillhub.Hub,
		manager *skills.Manager,
		mem *memory.FileStore,
		reg AgentRegistry,
		cb *agent.ContextBuilder,
	) {
		result = &Container{
			cfg:      cfg,
			hub:      hub,
			manager:  manager,
			mem:      mem,
			registry: reg,
			prompt:   cb,
		}
	})
	return result, err
}

func newHTTPClient(cfg *config.Config, o options) *http.Client {
	if o.httpClient != nil {
		return o.httpClient
	}
	return &http.Client{Timeout: cfg.Hub.Timeout()}
}

func newClient(cfg *config.Config, hc *http.Client) *skillhub.Client {
	opts := append([]skillhub.ClientOption{skillhub.WithHTTPClient(hc)}, cfg.Hub.ClientOptions()...)
	return skillhub.NewClient(opts...)
}

func newAcquirer(o options) *skillhub.Acquirer {
	return skillhub.NewAcquirer(o.cloner)
}

func newSkillManager(cfg *config.Config, o options) *skills.Manager {
	return skills.NewManager(cfg.SkillRoots(), o.skillOp...)
}

func newMemoryLock() MemoryLock {
	return MemoryLock{&sync.Mutex{}}
}

func newMemoryStore(cfg *config.Config, lock MemoryLock) (*memory.FileStore, error) {
	return memory.NewFileStore(cfg.WorkspacePath(), lock.Mutex)
}

func newAgentRegistry(
	cfg *config.Config,
	hub *skillhub.Hub,
	manager *skills.Manager,
	mem *memory.FileStore,
) AgentRegistry {
	return AgentRegistry{tools.NewRegistry(tools.RegistryDeps{
		Skills:      manager,
		Searcher:    hub.Client(),
		SearchLimit: cfg.Hub.SearchLimit,
		Memory:      mem,
	})}
}

func newContextBuilder(cfg *config.Config, mem *memory.FileStore, manager *skills.Manager) *agent.ContextBuilder {
	var store schema.MemoryStore = mem
	return agent.NewContextBuilder(cfg.WorkspacePath(), store, manager, cfg.Memory.MaxContextChars).
		WithBootstrapFiles(cfg.Agents.Defaults.BootstrapFiles)
}
