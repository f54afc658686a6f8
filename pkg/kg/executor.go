package kg

// Execute walks the graph as the plan describes and returns the reached
// entity names. An empty traversal is a successful answer ("no results"),
// not an error; only a contract violation in the plan itself fails.
func Execute(plan QueryPlan, g *Graph) QueryResult {
	if err := plan.validate(); err != nil {
		return failure(plan, err)
	}
	queryType := plan.QueryType()

	if !g.Exists(plan.StartEntity, plan.StartType) {
		return QueryResult{
			Success:   true,
			Plan:      plan,
			Results:   []string{},
			QueryType: queryType,
			Note:      "start entity is not present in the graph",
		}
	}

	frontier := []string{plan.StartEntity}
	for _, label := range plan.RelationChain {
		var next []string
		seen := make(map[string]struct{})
		for _, name := range frontier {
			for _, peer := range g.Neighbors(name, label, plan.Direction) {
				if _, dup := seen[peer]; dup {
					continue
				}
				seen[peer] = struct{}{}
				next = append(next, peer)
			}
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}

	result := QueryResult{
		Success:   true,
		Plan:      plan,
		Results:   frontier,
		QueryType: queryType,
	}
	if len(frontier) == 0 {
		result.Results = []string{}
		result.Note = "the traversal completed but found no matching entities"
	}
	return result
}

// failure converts a pipeline error into a QueryResult. Errors that are not
// QueryErrors are tagged as infrastructure faults.
func failure(plan QueryPlan, err error) QueryResult {
	kind, ok := KindOf(err)
	if !ok {
		kind = FailInfrastructure
	}
	return QueryResult{
		Success:   false,
		Plan:      plan,
		Results:   []string{},
		QueryType: "Unknown",
		Error:     err.Error(),
		ErrorKind: kind,
	}
}
