package inventory

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// ParentRef is an optional reference to the owning category.
// Any JSON number decodes to a reference; null, strings and booleans mean "no owner".
// Numbers that are not an integral int are kept in Raw and never resolve to a node.
type ParentRef struct {
	ID    int
	Valid bool
	Raw   json.Number
}

func Owner(id int) ParentRef {
	return ParentRef{ID: id, Valid: true}
}

func OwnerFromPtr(id *int) ParentRef {
	if id == nil {
		return ParentRef{}
	}
	return Owner(*id)
}

// resolve looks the owner up in nodes. An unresolvable reference never matches.
func (p ParentRef) resolve(nodes map[int]*CategoryNode) (*CategoryNode, bool) {
	if !p.Valid || p.Raw != "" {
		return nil, false
	}
	node, ok := nodes[p.ID]
	return node, ok
}

func (p ParentRef) Ptr() *int {
	if !p.Valid || p.Raw != "" {
		return nil
	}
	id := p.ID
	return &id
}

func (p ParentRef) String() string {
	switch {
	case !p.Valid:
		return "none"
	case p.Raw != "":
		return "#" + p.Raw.String()
	default:
		return "#" + strconv.Itoa(p.ID)
	}
}

func (p ParentRef) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	if p.Raw != "" {
		return []byte(p.Raw), nil
	}
	return []byte(strconv.Itoa(p.ID)), nil
}

func (p *ParentRef) UnmarshalJSON(data []byte) error {
	*p = ParentRef{}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return err
	}
	number, ok := value.(json.Number)
	if !ok {
		return nil
	}
	if id, err := strconv.Atoi(number.String()); err == nil {
		*p = Owner(id)
		return nil
	}
	f, err := number.Float64()
	if err == nil && f == math.Trunc(f) && f >= math.MinInt && f < math.MaxInt {
		*p = Owner(int(f))
		return nil
	}
	*p = ParentRef{Valid: true, Raw: number}
	return nil
}
