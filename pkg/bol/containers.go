package bol

import (
	"strings"
)

// Field names used in cargo, container and container master records.
const (
	FieldContainerNo   = "container_no"
	FieldContainerType = "container_type"
	FieldTypeName      = "container_type_name"
	FieldSealNo        = "seal_no"
	FieldPackages      = "packages"
	FieldPackageType   = "package_type"
	FieldGrossWeight   = "gross_weight"
	FieldVolume        = "volume"
	FieldCommodity     = "commodity"
)

// containerKey normalizes a container number for joining.
func containerKey(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// JoinContainerMeta enriches container rows with seal number and container
// type name from the master list, matched on container number. Fields
// already present on a row win. Unmatched rows are returned unchanged.
// The input rows are not modified.
func JoinContainerMeta(rows, meta []Record) []Record {
	index := make(map[string]Record, len(meta))
	for _, m := range meta {
		key := containerKey(m.Str(FieldContainerNo))
		if key == "" {
			continue
		}
		if _, dup := index[key]; !dup {
			index[key] = m
		}
	}

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		joined := make(Record, len(row)+2)
		for k, v := range row {
			joined[k] = v
		}
		if m, ok := index[containerKey(row.Str(FieldContainerNo))]; ok {
			if !joined.Has(FieldSealNo) && m.Has(FieldSealNo) {
				joined[FieldSealNo] = m.Str(FieldSealNo)
			}
			if !joined.Has(FieldTypeName) {
				if name := firstNonEmpty(m.Str(FieldTypeName), m.Str(FieldContainerType)); name != "" {
					joined[FieldTypeName] = name
				}
			}
		}
		out = append(out, joined)
	}
	return out
}

// unmatchedContainers lists the container numbers that have no row in the
// master list, in input order.
func unmatchedContainers(rows, meta []Record) []string {
	known := make(map[string]bool, len(meta))
	for _, m := range meta {
		known[containerKey(m.Str(FieldContainerNo))] = true
	}
	var missing []string
	for _, row := range rows {
		no := row.Str(FieldContainerNo)
		if key := containerKey(no); key != "" && !known[key] {
			missing = append(missing, no)
		}
	}
	return missing
}

// containerEntry renders one container row. Absent fields are omitted.
func containerEntry(r Record) ContainerEntry {
	var lines []string
	add := func(s string) {
		if s != "" {
			lines = append(lines, s)
		}
	}

	add(strings.ToUpper(r.Str(FieldContainerNo)))
	add(firstNonEmpty(r.Str(FieldTypeName), r.Str(FieldContainerType)))
	if seal := r.Str(FieldSealNo); seal != "" {
		add("SEAL: " + seal)
	}
	add(packagesLine(r))
	add(quantityLine(r, FieldGrossWeight, "G.W: ", " KGS"))
	add(quantityLine(r, FieldVolume, "MEAS: ", " CBM"))
	return ContainerEntry{Lines: lines}
}

// cargoEntry renders one loose cargo line when a house has no containers.
func cargoEntry(r Record) ContainerEntry {
	var lines []string
	if c := r.Str(FieldCommodity); c != "" {
		lines = append(lines, c)
	}
	for _, l := range []string{
		packagesLine(r),
		quantityLine(r, FieldGrossWeight, "G.W: ", " KGS"),
		quantityLine(r, FieldVolume, "MEAS: ", " CBM"),
	} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return ContainerEntry{Lines: lines}
}

func packagesLine(r Record) string {
	n, ok := r.num(FieldPackages)
	if !ok {
		return ""
	}
	line := formatCount(n)
	if t := r.Str(FieldPackageType); t != "" {
		line += " " + strings.ToUpper(t)
	}
	return line
}

// quantityLine renders a numeric field with prefix and unit, or nothing
// when the field is absent or not a number.
func quantityLine(r Record, field, prefix, unit string) string {
	n, ok := r.num(field)
	if !ok {
		return ""
	}
	return prefix + formatQuantity(n, 3) + unit
}

// BuildEntries renders container rows (after the master-data join) into
// table entries, one per row in input order. A house without containers
// gets one entry per cargo record instead.
func BuildEntries(containers, cargo, meta []Record) []ContainerEntry {
	if len(containers) == 0 {
		entries := make([]ContainerEntry, 0, len(cargo))
		for _, r := range cargo {
			entries = append(entries, cargoEntry(r))
		}
		return entries
	}

	joined := JoinContainerMeta(containers, meta)
	entries := make([]ContainerEntry, 0, len(joined))
	for _, r := range joined {
		entries = append(entries, containerEntry(r))
	}
	return entries
}
