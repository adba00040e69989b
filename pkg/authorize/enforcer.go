package authorize

import (
	"fmt"
	"os"

	casbin "github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
)

// ModelText is the RBAC-with-domains model. g2 grants global roles that
// apply across every domain.
const ModelText = `
[request_definition]
r = sub, dom, obj, act

[policy_definition]
p = sub, dom, obj, act, eft

[role_definition]
g = _, _, _
g2 = _, _

[policy_effect]
e = some(where (p.eft == allow)) && !some(where (p.eft == deny))

[matchers]
m = (g(r.sub, p.sub, r.dom) || g2(r.sub, p.sub)) && (p.dom == "*" || p.dom == r.dom) && (p.obj == "*" || keyMatch2(r.obj, p.obj)) && (p.act == "*" || keyMatch(r.act, p.act))
`

// NewEnforcer builds a DistributedEnforcer from ModelText. With a policy
// path it is backed by a CSV file adapter, otherwise it has no adapter and
// policies are kept in memory only.
func NewEnforcer(cfg Config) (*casbin.DistributedEnforcer, error) {
	m, err := model.NewModelFromString(ModelText)
	if err != nil {
		return nil, err
	}

	var e *casbin.DistributedEnforcer
	if cfg.PolicyPath != "" {
		if err := touch(cfg.PolicyPath); err != nil {
			return nil, err
		}
		e, err = casbin.NewDistributedEnforcer(m, fileadapter.NewAdapter(cfg.PolicyPath))
	} else {
		e, err = casbin.NewDistributedEnforcer(m)
	}
	if err != nil {
		return nil, err
	}

	e.EnableAutoSave(false)
	e.EnableEnforce(true)
	return e, nil
}

// touch creates an empty policy file so the first load succeeds.
func touch(path string) error {
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open policy file: %w", err)
	}
	return f.Close()
}
