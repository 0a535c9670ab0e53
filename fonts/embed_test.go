package fonts

import "testing"

func TestLoadBuiltin(t *testing.T) {
	for _, name := range []string{"go-regular", "embed:go-bold", " Go-Bold "} {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) 失败: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("Load(%q) 返回空数据", name)
		}
	}
}

func TestLoadUnknown(t *testing.T) {
	if _, err := Load("embed:Inter-Regular.ttf"); err == nil {
		t.Fatalf("未知字体应报错")
	}
}
