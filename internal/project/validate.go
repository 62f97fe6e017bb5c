package project

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	cneerrors "github.com/LUX-YU/cmake-node-editor/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// validateFile performs schema and cross-record validation on a decoded
// document: ids positive and unique, titles non-empty and unique, edges
// referencing known ids with no self loops.
func validateFile(file *File) error {
	if file == nil {
		return cneerrors.NewValidationError("project", "document is nil", nil)
	}

	if err := validatorInstance().Struct(file); err != nil {
		return convertValidationError(err)
	}

	ids := make(map[int]int, len(file.Nodes))
	titles := make(map[string]int, len(file.Nodes))
	for i, node := range file.Nodes {
		if prev, exists := ids[node.NodeID]; exists {
			return cneerrors.NewValidationError(
				fieldForNode(i, "node_id"),
				fmt.Sprintf("duplicate node id %d (first used by nodes[%d])", node.NodeID, prev), nil)
		}
		ids[node.NodeID] = i

		if prev, exists := titles[node.Title]; exists {
			return cneerrors.NewValidationError(
				fieldForNode(i, "title"),
				fmt.Sprintf("duplicate title %q (first used by nodes[%d])", node.Title, prev), nil)
		}
		titles[node.Title] = i
	}

	seen := make(map[EdgeRecord]struct{}, len(file.Edges))
	for i, edge := range file.Edges {
		if edge.SourceNodeID == edge.TargetNodeID {
			return cneerrors.NewValidationError(
				fieldForEdge(i), fmt.Sprintf("self loop on node %d", edge.SourceNodeID), nil)
		}
		if _, known := ids[edge.SourceNodeID]; !known {
			return cneerrors.NewValidationError(
				fieldForEdge(i), fmt.Sprintf("references unknown node %d", edge.SourceNodeID), nil)
		}
		if _, known := ids[edge.TargetNodeID]; !known {
			return cneerrors.NewValidationError(
				fieldForEdge(i), fmt.Sprintf("references unknown node %d", edge.TargetNodeID), nil)
		}
		if _, dup := seen[edge]; dup {
			return cneerrors.NewValidationError(
				fieldForEdge(i), fmt.Sprintf("duplicate edge %d -> %d", edge.SourceNodeID, edge.TargetNodeID), nil)
		}
		seen[edge] = struct{}{}
	}

	if file.Global.StartNodeID != 0 {
		if _, known := ids[file.Global.StartNodeID]; !known {
			return cneerrors.NewValidationError(
				"global.start_node_id",
				fmt.Sprintf("references unknown node %d", file.Global.StartNodeID), nil)
		}
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return cneerrors.NewValidationError(
			first.Namespace(),
			fmt.Sprintf("failed %q constraint", first.Tag()), err)
	}
	return cneerrors.NewValidationError("project", err.Error(), err)
}

func fieldForNode(index int, field string) string {
	return fmt.Sprintf("nodes[%d].%s", index, field)
}

func fieldForEdge(index int) string {
	return fmt.Sprintf("edges[%d]", index)
}
