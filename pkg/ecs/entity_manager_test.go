package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testFrameComponent struct {
	X, Y, W, H int
}

type testLabelComponent struct {
	Text string
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// ID 从 1 开始且唯一
	if id1 != 1 || id2 != 2 {
		t.Errorf("expected ids 1 and 2, got %d and %d", id1, id2)
	}
	if !em.EntityExists(id1) || em.EntityCount() != 2 {
		t.Error("created entities should exist")
	}
}

func TestComponentLifecycle(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	frameType := reflect.TypeOf(&testFrameComponent{})

	if em.HasComponent(id, frameType) {
		t.Error("should not have component before adding")
	}

	em.AddComponent(id, &testFrameComponent{X: 10, Y: 20, W: 250, H: 90})
	comp, found := em.GetComponent(id, frameType)
	if !found {
		t.Fatal("component should be found")
	}
	if frame := comp.(*testFrameComponent); frame.W != 250 || frame.H != 90 {
		t.Errorf("component data mismatch: %+v", frame)
	}

	em.RemoveComponent(id, frameType)
	if em.HasComponent(id, frameType) {
		t.Error("component should be removed")
	}
}

// TestDestroyEntity 标记删除的实体在清理前就不再被查询到
func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testFrameComponent{})

	em.DestroyEntity(id)
	em.DestroyEntity(id)

	if em.EntityExists(id) {
		t.Error("marked entity should not exist")
	}
	if !em.IsMarkedForDestruction(id) {
		t.Error("entity should be marked")
	}
	if got := GetEntitiesWith1[*testFrameComponent](em); len(got) != 0 {
		t.Errorf("marked entity returned by query: %v", got)
	}

	em.RemoveMarkedEntities()
	if em.EntityCount() != 0 || em.IsMarkedForDestruction(id) {
		t.Error("entity should be gone after cleanup")
	}
}

// TestGetEntitiesWithSorted 查询结果按 ID 升序
func TestGetEntitiesWithSorted(t *testing.T) {
	em := NewEntityManager()
	var want []EntityID
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testFrameComponent{X: i})
		if i%2 == 0 {
			AddComponent(em, id, &testLabelComponent{Text: "even"})
			want = append(want, id)
		}
	}

	got := GetEntitiesWith2[*testFrameComponent, *testLabelComponent](em)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if all := GetEntitiesWith1[*testFrameComponent](em); len(all) != 20 {
		t.Errorf("expected 20 frames, got %d", len(all))
	}
}

// TestGenericAPI 泛型 API 的正确性
func TestGenericAPI(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testLabelComponent{Text: "OK"})

	label, ok := GetComponent[*testLabelComponent](em, id)
	if !ok || label.Text != "OK" {
		t.Fatalf("GetComponent: got %+v, %v", label, ok)
	}
	if !HasComponent[*testLabelComponent](em, id) {
		t.Error("HasComponent should be true")
	}
	if HasComponent[*testFrameComponent](em, id) {
		t.Error("HasComponent should be false for missing type")
	}
	if _, ok := GetComponent[*testFrameComponent](em, id); ok {
		t.Error("missing component should not be found")
	}

	AddComponent(em, id, &testFrameComponent{})
	if got := GetEntitiesWith3[*testFrameComponent, *testLabelComponent, *testLabelComponent](em); len(got) != 1 {
		t.Errorf("GetEntitiesWith3: got %v", got)
	}

	RemoveComponent[*testLabelComponent](em, id)
	if HasComponent[*testLabelComponent](em, id) {
		t.Error("component should be removed")
	}

	// 不存在的实体
	if _, ok := GetComponent[*testLabelComponent](em, 999); ok {
		t.Error("unknown entity should not have components")
	}
}
