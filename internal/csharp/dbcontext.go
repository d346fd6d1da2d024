package csharp

import (
	"strconv"

	"github.com/origadmin/syngen/internal/generator"
	"github.com/origadmin/syngen/internal/model"
	"github.com/origadmin/syngen/internal/naming"
)

type dbContextStrategy struct {
	generator.Default[*model.DbContext]
}

// Generate renders the context interface and its EF Core implementation into one
// file. Each entity gets a DbSet named after its plural.
func (dbContextStrategy) Generate(g *generator.Generator, scope generator.Scope, d *model.DbContext) (string, error) {
	iface := model.NewInterface("I" + d.Name)
	class := model.NewClass(d.Name)
	class.BaseType = model.Ref("DbContext")
	class.Implement(model.Ref(iface.Name))

	ctor := model.NewConstructor().AddParam(
		model.NewParam("options", model.Ref("DbContextOptions", model.Ref(d.Name))),
	)
	ctor.BaseArgs = []string{"options"}
	class.Add(ctor)

	for _, entity := range d.Entities {
		n := naming.Derive(entity)
		set := model.Ref("DbSet", model.Ref(n.Pascal))

		iface.Add(&model.Property{Name: n.PascalPlural, Type: set, Accessors: model.GetOnly})
		prop := model.NewProperty(n.PascalPlural, set)
		prop.Value = "null!"
		class.Add(prop)
	}

	save := model.NewMethod("SaveChangesAsync", model.Ref(model.TypeTask, model.Ref(model.TypeInt)))
	ct := model.NewParam("cancellationToken", model.Ref("CancellationToken"))
	ct.Default = "default"
	iface.Add(save.AddParam(ct))

	if d.Schema != "" {
		onCreating := model.NewMethod("OnModelCreating", nil)
		onCreating.Access = model.Protected
		onCreating.Override = true
		onCreating.Body = "modelBuilder.HasDefaultSchema(" + strconv.Quote(d.Schema) + ");\nbase.OnModelCreating(modelBuilder);"
		class.Add(onCreating.AddParam(model.NewParam("modelBuilder", model.Ref("ModelBuilder"))))
	}

	frag := fragment(scope)
	ifaceText, err := g.Render(frag, iface)
	if err != nil {
		return "", err
	}
	classText, err := g.Render(frag, class)
	if err != nil {
		return "", err
	}

	usings := []string{"Microsoft.EntityFrameworkCore"}
	if root := scope.String(generator.KeyNamespace); root != "" {
		usings = append(usings, root+".Models")
	}
	ns := d.Namespace
	if ns == "" {
		ns = scope.String(generator.KeyNamespace)
	}
	return fileHeader(usings, ns) + ifaceText + "\n\n" + classText + "\n", nil
}
