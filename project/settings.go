package project

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/willibrandon/govcx/condition"
	"github.com/willibrandon/govcx/observability"
)

// location addresses one named setting: either a child of an
// ItemDefinitionGroup subgroup (ClCompile, Link, Lib) or a child of a
// PropertyGroup with the given label ("" for unlabeled groups).
type location struct {
	container string
	subgroup  string
	label     string
	name      string
}

func itemDefinition(subgroup, name string) location {
	return location{container: tagItemDefinitionGroup, subgroup: subgroup, name: name}
}

func property(label, name string) location {
	return location{container: tagPropertyGroup, label: label, name: name}
}

func (l location) String() string {
	if l.subgroup != "" {
		return l.subgroup + "/" + l.name
	}
	return l.name
}

// shape records where the condition of a setting lives. Project files from
// different tool generations use both layouts.
type shape int

const (
	// groupConditioned containers carry the condition; their settings do not.
	groupConditioned shape = iota
	// itemConditioned containers are unconditioned; each setting carries its own condition.
	itemConditioned
)

// settingGroup is a container resolved against one query axis.
type settingGroup struct {
	owner *etree.Element // ItemDefinitionGroup or PropertyGroup
	elem  *etree.Element // element holding the settings; nil when the subgroup is missing
	shape shape
}

// groups returns the containers for loc whose own condition matches the
// query, plus every unconditioned container, in document order.
func (d *Document) groups(loc location, platform, configuration string) ([]settingGroup, error) {
	var groups []settingGroup
	for _, owner := range d.root().SelectElements(loc.container) {
		if loc.container == tagPropertyGroup && owner.SelectAttrValue(attrLabel, "") != loc.label {
			continue
		}

		g := settingGroup{owner: owner, elem: owner, shape: itemConditioned}
		if attr := owner.SelectAttr(attrCondition); attr != nil {
			ok, err := condition.Matches(attr.Value, platform, configuration)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", loc.container, loc, err)
			}
			if !ok {
				continue
			}
			g.shape = groupConditioned
		}
		if loc.subgroup != "" {
			g.elem = owner.SelectElement(loc.subgroup)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// find returns the setting named name within g that applies to the query.
// For item-conditioned groups an unconditioned setting is returned only when
// fallback is set and no conditioned setting matches.
func (g settingGroup) find(name, platform, configuration string, fallback bool) (*etree.Element, error) {
	if g.elem == nil {
		return nil, nil
	}
	if g.shape == groupConditioned {
		return g.elem.SelectElement(name), nil
	}

	var unconditioned *etree.Element
	for _, item := range g.elem.SelectElements(name) {
		attr := item.SelectAttr(attrCondition)
		if attr == nil {
			if unconditioned == nil {
				unconditioned = item
			}
			continue
		}
		ok, err := condition.Matches(attr.Value, platform, configuration)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if ok {
			return item, nil
		}
	}
	if fallback {
		return unconditioned, nil
	}
	return nil, nil
}

// lookup returns the text of the setting at loc in the first container that
// applies to the query. ok is false when no such node exists, which means the
// project default is inherited; an empty element yields ("", true).
func (d *Document) lookup(loc location, platform, configuration string) (value string, ok bool, err error) {
	groups, err := d.groups(loc, platform, configuration)
	if err != nil || len(groups) == 0 {
		return "", false, err
	}
	item, err := groups[0].find(loc.name, platform, configuration, true)
	if err != nil || item == nil {
		return "", false, err
	}
	return item.Text(), true, nil
}

// set writes value to loc for every concrete axis selected by the query.
// A nil value removes the setting so the project default is inherited again.
func (d *Document) set(loc location, platform, configuration string, value *string) error {
	if platform == condition.Wildcard || configuration == condition.Wildcard {
		for axis := range d.Configurations(platform, configuration) {
			if err := d.setConcrete(loc, axis, value); err != nil {
				return err
			}
		}
		return nil
	}
	return d.setConcrete(loc, condition.Axis{Configuration: configuration, Platform: platform}, value)
}

func (d *Document) setConcrete(loc location, axis condition.Axis, value *string) error {
	groups, err := d.groups(loc, axis.Platform, axis.Configuration)
	if err != nil {
		return err
	}

	var fallback *settingGroup
	applied := false
	for i := range groups {
		g := &groups[i]
		item, err := g.find(loc.name, axis.Platform, axis.Configuration, false)
		if err != nil {
			return err
		}
		switch {
		case g.shape == groupConditioned || item != nil:
			d.apply(g, loc, item, "", value)
			applied = true
		case value == nil:
			if err := d.unshare(g, loc, axis); err != nil {
				return err
			}
		case fallback == nil:
			fallback = g
		}
	}

	if !applied && fallback != nil {
		d.apply(fallback, loc, nil, condition.Format(axis), value)
		applied = value != nil
	}
	if !applied && value != nil {
		d.logger.Warn("No {Container} matches {Axis}; {Setting} not written", loc.container, axis.String(), loc.String())
	}
	return nil
}

// unshare removes an unconditioned setting from an item-conditioned group for
// axis only. Every other declared configuration without its own setting keeps
// the shared value through a conditioned copy.
func (d *Document) unshare(g *settingGroup, loc location, axis condition.Axis) error {
	shared, err := g.find(loc.name, axis.Platform, axis.Configuration, true)
	if err != nil || shared == nil {
		return err
	}

	text := shared.Text()
	for other := range d.Configurations(condition.Wildcard, condition.Wildcard) {
		if other == axis {
			continue
		}
		own, err := g.find(loc.name, other.Platform, other.Configuration, false)
		if err != nil {
			return err
		}
		if own == nil {
			d.apply(g, loc, nil, condition.Format(other), &text)
		}
	}
	d.apply(g, loc, shared, "", nil)
	return nil
}

// apply creates, updates or removes one setting node. cond is set on newly
// created nodes only.
func (d *Document) apply(g *settingGroup, loc location, item *etree.Element, cond string, value *string) {
	var action string
	switch {
	case value == nil:
		if item == nil {
			return
		}
		removeElement(g.elem, item)
		action = "removed"
	case item == nil:
		if g.elem == nil {
			g.elem = appendElement(g.owner, loc.subgroup)
		}
		item = appendElement(g.elem, loc.name)
		if cond != "" {
			item.CreateAttr(attrCondition, cond)
		}
		item.SetText(*value)
		action = "created"
	default:
		item.SetText(*value)
		action = "updated"
	}

	observability.SettingMutationsTotal.WithLabelValues(loc.String(), action).Inc()
	d.logger.Verbose("{Action} {Setting}", action, loc.String())
}
