package vrp

import (
	"errors"
	"math"
	"time"
)

// Window constrains arrival at a node to [StartMin, EndMin] minutes from
// route start.
type Window struct {
	StartMin int
	EndMin   int
}

// Problem is a vehicle-routing assignment over a duration matrix. All
// vehicles start from the shared Depot node; every other node must be
// visited exactly once across all routes.
type Problem struct {
	// Durations[i][j] is the travel time in minutes from node i to node j.
	Durations [][]int
	// VehicleCount is the number of routes to build.
	VehicleCount int
	// Depot is the shared start node; it belongs to every route.
	Depot int
	// MaxRouteMinutes caps the total duration of each route.
	MaxRouteMinutes int
	// WaitSlackMinutes bounds how long a vehicle may wait at a node for a
	// window to open.
	WaitSlackMinutes int
	// Windows holds optional arrival windows per node.
	Windows map[int]Window
}

// Solution is one route per vehicle. Each route begins with the depot node;
// vehicles that stay parked keep a depot-only route.
type Solution struct {
	Routes       [][]int
	TotalMinutes int
}

// ErrInfeasible reports that no assignment satisfying the time windows and
// route caps could be constructed. Callers fall back to direct routing.
var ErrInfeasible = errors.New("vrp: no feasible assignment")

// Solve builds routes with a cheapest-arc construction heuristic and then
// improves them by local search (2-opt, relocate, cross-exchange) until the
// time budget runs out. Deterministic for a given problem.
func Solve(p Problem, timeBudget time.Duration) (Solution, error) {
	n := len(p.Durations)
	if n == 0 || p.VehicleCount <= 0 {
		return Solution{}, ErrInfeasible
	}
	if p.Depot < 0 || p.Depot >= n {
		return Solution{}, ErrInfeasible
	}

	sol, err := cheapestArcSeed(p)
	if err != nil {
		return Solution{}, err
	}

	deadline := time.Now().Add(timeBudget)
	improved := true
	for improved && time.Now().Before(deadline) {
		improved = false
		if twoOptImprove(p, sol.Routes) {
			improved = true
		}
		if relocateImprove(p, sol.Routes) {
			improved = true
		}
		if crossExchangeImprove(p, sol.Routes) {
			improved = true
		}
	}

	sol.TotalMinutes = totalMinutes(p, sol.Routes)
	return sol, nil
}

// cheapestArcSeed assigns nodes round-robin across vehicles, always
// appending the cheapest feasible arc from the route's current end.
func cheapestArcSeed(p Problem) (Solution, error) {
	n := len(p.Durations)
	routes := make([][]int, p.VehicleCount)
	for v := range routes {
		routes[v] = []int{p.Depot}
	}

	remaining := make(map[int]struct{}, n-1)
	for i := 0; i < n; i++ {
		if i != p.Depot {
			remaining[i] = struct{}{}
		}
	}

	for len(remaining) > 0 {
		progress := false
		for v := range routes {
			if len(remaining) == 0 {
				break
			}

			bestNode := -1
			bestCost := math.MaxInt
			last := routes[v][len(routes[v])-1]
			for node := range remaining {
				cost := p.Durations[last][node]
				if cost >= bestCost {
					continue
				}
				cand := append(append([]int(nil), routes[v]...), node)
				if !feasible(p, cand) {
					continue
				}
				bestCost = cost
				bestNode = node
			}

			if bestNode >= 0 {
				routes[v] = append(routes[v], bestNode)
				delete(remaining, bestNode)
				progress = true
			}
		}
		if !progress {
			return Solution{}, ErrInfeasible
		}
	}

	return Solution{Routes: routes}, nil
}

// feasible propagates the schedule along a route: waits (bounded by the
// slack) may open windows, arrivals past a window end or past the route cap
// fail.
func feasible(p Problem, route []int) bool {
	_, ok := scheduleRoute(p, route)
	return ok
}

func scheduleRoute(p Problem, route []int) (int, bool) {
	t := 0
	for i := 1; i < len(route); i++ {
		t += p.Durations[route[i-1]][route[i]]

		if w, ok := p.Windows[route[i]]; ok {
			if t < w.StartMin {
				wait := w.StartMin - t
				if p.WaitSlackMinutes > 0 && wait > p.WaitSlackMinutes {
					return 0, false
				}
				t = w.StartMin
			}
			if t > w.EndMin {
				return 0, false
			}
		}

		if p.MaxRouteMinutes > 0 && t > p.MaxRouteMinutes {
			return 0, false
		}
	}
	return t, true
}

func totalMinutes(p Problem, routes [][]int) int {
	total := 0
	for _, r := range routes {
		t, _ := scheduleRoute(p, r)
		total += t
	}
	return total
}

// twoOptImprove reverses segments within each route when that shortens it
// and keeps the schedule feasible. Index 0 (depot) never moves.
func twoOptImprove(p Problem, routes [][]int) bool {
	changed := false
	for v := range routes {
		r := routes[v]
		improvedRoute := true
		for improvedRoute {
			improvedRoute = false
			base, _ := scheduleRoute(p, r)
			for i := 1; i < len(r)-1; i++ {
				for k := i + 1; k < len(r); k++ {
					cand := append([]int(nil), r...)
					for a, b := i, k; a < b; a, b = a+1, b-1 {
						cand[a], cand[b] = cand[b], cand[a]
					}
					t, ok := scheduleRoute(p, cand)
					if ok && t < base {
						r = cand
						base = t
						improvedRoute = true
						changed = true
					}
				}
			}
		}
		routes[v] = r
	}
	return changed
}

// relocateImprove moves single nodes between routes when total duration
// drops and both routes stay feasible.
func relocateImprove(p Problem, routes [][]int) bool {
	changed := false
	improved := true
	for improved {
		improved = false
		for a := range routes {
			for b := range routes {
				if a == b {
					continue
				}
				for i := 1; i < len(routes[a]); i++ {
					node := routes[a][i]
					srcCand := append(append([]int(nil), routes[a][:i]...), routes[a][i+1:]...)
					srcT, srcOK := scheduleRoute(p, srcCand)
					if !srcOK {
						continue
					}

					before := routeMinutes(p, routes[a]) + routeMinutes(p, routes[b])
					for pos := 1; pos <= len(routes[b]); pos++ {
						dstCand := make([]int, 0, len(routes[b])+1)
						dstCand = append(dstCand, routes[b][:pos]...)
						dstCand = append(dstCand, node)
						dstCand = append(dstCand, routes[b][pos:]...)

						dstT, dstOK := scheduleRoute(p, dstCand)
						if !dstOK {
							continue
						}
						if srcT+dstT < before {
							routes[a] = srcCand
							routes[b] = dstCand
							improved = true
							changed = true
							break
						}
					}
					if improved {
						break
					}
				}
				if improved {
					break
				}
			}
			if improved {
				break
			}
		}
	}
	return changed
}

// crossExchangeImprove swaps one node between two routes when the combined
// duration drops and both schedules stay feasible.
func crossExchangeImprove(p Problem, routes [][]int) bool {
	changed := false
	for a := 0; a < len(routes); a++ {
		for b := a + 1; b < len(routes); b++ {
			for i := 1; i < len(routes[a]); i++ {
				for j := 1; j < len(routes[b]); j++ {
					ca := append([]int(nil), routes[a]...)
					cb := append([]int(nil), routes[b]...)
					ca[i], cb[j] = cb[j], ca[i]

					ta, okA := scheduleRoute(p, ca)
					tb, okB := scheduleRoute(p, cb)
					if !okA || !okB {
						continue
					}
					if ta+tb < routeMinutes(p, routes[a])+routeMinutes(p, routes[b]) {
						routes[a] = ca
						routes[b] = cb
						changed = true
					}
				}
			}
		}
	}
	return changed
}

func routeMinutes(p Problem, route []int) int {
	t, _ := scheduleRoute(p, route)
	return t
}
