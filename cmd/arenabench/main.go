// arenabench exercises the arenakit region allocator and its containers with
// parameterized workloads and reports how the arena responded.
package main

func main() {
	execute()
}
