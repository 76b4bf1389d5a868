package libinstall

import "testing"

func TestParseCoordinatePlain(t *testing.T) {
	c, err := ParseCoordinate("org.lwjgl:lwjgl:3.3.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Group != "org.lwjgl" || c.Artifact != "lwjgl" || c.Version != "3.3.1" || c.Extension != "jar" {
		t.Fatalf("unexpected parse result: %+v", c)
	}
	if c.Filename() != "lwjgl-3.3.1.jar" {
		t.Fatalf("unexpected filename: %s", c.Filename())
	}
}

func TestParseCoordinateWithExtension(t *testing.T) {
	c, err := ParseCoordinate("net.minecraftforge:forge:1.20.1-47.2.0@zip")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Version != "1.20.1-47.2.0" || c.Extension != "zip" {
		t.Fatalf("unexpected version/ext: %+v", c)
	}
}

func TestParseCoordinateInvalid(t *testing.T) {
	if _, err := ParseCoordinate("not-a-coordinate"); err == nil {
		t.Fatal("expected error for malformed coordinate")
	}
}

func TestCoordinatePathJoinsGroupSegments(t *testing.T) {
	c, _ := ParseCoordinate("org.lwjgl:lwjgl:3.3.1")
	dir, url := c.Path("/root/.minecraft/libraries", "https://libraries.minecraft.net")
	wantURL := "https://libraries.minecraft.net/org/lwjgl/lwjgl/3.3.1"
	if url != wantURL {
		t.Fatalf("expected %q, got %q", wantURL, url)
	}
	if dir == "" {
		t.Fatal("expected non-empty dir")
	}
}
