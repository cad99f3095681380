package placement_test

import (
	"fmt"

	"github.com/matzehuels/anchor/pkg/geom"
	"github.com/matzehuels/anchor/pkg/placement"
)

func ExampleCompute() {
	res := placement.Compute(placement.Request{
		Trigger:         geom.FromEdges(100, 50, 150, 130),
		Content:         geom.Size(120, 80),
		Boundary:        geom.NewRect(0, 0, 800, 600),
		Side:            placement.Bottom,
		Align:           placement.Start,
		SideOffset:      8,
		AvoidCollisions: true,
	})
	fmt.Println(res.X, res.Y, res.Side)
	// Output:
	// 50 138 bottom
}

func ExampleCompute_flip() {
	res := placement.Compute(placement.Request{
		Trigger:         geom.FromEdges(10, 100, 200, 40),
		Content:         geom.Size(120, 80),
		Boundary:        geom.NewRect(0, 0, 800, 600),
		Side:            placement.Top,
		SideOffset:      8,
		AvoidCollisions: true,
	})
	fmt.Println(res.Side, res.Flipped, res.Y)
	// Output:
	// bottom true 48
}

func ExampleProfile_Request() {
	hover, _ := placement.LookupProfile(placement.ProfileHoverCard)
	req := hover.Request(geom.NewRect(300, 300, 100, 20), geom.Size(200, 100), geom.NewRect(0, 0, 800, 600))
	res := placement.Compute(req)
	fmt.Println(res.X, res.Y, res.Side)
	// Output:
	// 250 192 top
}
